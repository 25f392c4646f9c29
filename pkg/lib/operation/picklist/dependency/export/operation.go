package export

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/sfpd/picklist-dependency/internal/pkg/artifact"
	"github.com/sfpd/picklist-dependency/internal/pkg/filesystem"
	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/picklist"
	"github.com/sfpd/picklist-dependency/internal/pkg/picklist/csvtable"
	"github.com/sfpd/picklist-dependency/internal/pkg/salesforce"
	"github.com/sfpd/picklist-dependency/internal/pkg/telemetry"
)

type Options struct {
	// DependentField is the fully qualified name, for example "Account.SubStatus__c".
	DependentField string
	// OutputDir is relative to the filesystem.
	OutputDir string
	// LF terminates CSV records by "\n" instead of "\r\n".
	LF        bool
}

type dependencies interface {
	Fs() filesystem.Fs
	Logger() log.Logger
	Telemetry() telemetry.Telemetry
	MetadataAPI() *salesforce.MetadataAPI
	ArtifactMirror() artifact.Mirror
}

// Run reads the dependent field, writes the dependency table to "<controlling>-<dependent>.csv" and returns the CSV.
func Run(ctx context.Context, o Options, d dependencies) (csv string, err error) {
	ctx, span := d.Telemetry().Tracer().Start(ctx, "sfpd.operation.picklist.dependency.export")
	span.SetAttributes(attribute.String("sfpd.field", o.DependentField))
	defer span.End(&err)

	logger := d.Logger()

	// Read metadata
	logger.Infof(ctx, `Fetching "%s" ...`, o.DependentField)
	field, err := d.MetadataAPI().ReadCustomField(ctx, o.DependentField)
	if err != nil {
		return "", err
	}

	// Check that the field exists and has a dependency configured
	if err := picklist.CheckDependentField(ctx, o.DependentField, field); err != nil {
		return "", err
	}

	// Extract and render
	controlling, dependent := field.ControllingLabel(), field.DependentLabel()
	table := picklist.ExtractDependencies(*field.ValueSet)
	logger.Debugf(ctx, `Extracted %d pairs, controlling field "%s", dependent field "%s".`, table.Len(), controlling, dependent)
	span.SetAttributes(attribute.Int("sfpd.pairs", table.Len()))
	d.Telemetry().Meter().
		Counter("sfpd.picklist.dependency.pairs", "Number of exported dependency pairs.", "1").
		Add(ctx, int64(table.Len()), metric.WithAttributes(attribute.String("field", o.DependentField)))

	var opts []csvtable.Option
	if o.LF {
		opts = append(opts, csvtable.WithLF())
	}
	csv, err = csvtable.Render(table, controlling, dependent, opts...)
	if err != nil {
		return "", err
	}

	// Write file
	outputDir := o.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	writer := artifact.NewWriter(d.Fs(), logger)
	path, err := writer.Write(ctx, outputDir, controlling, dependent, csv)
	if err != nil {
		return "", err
	}

	// Copy to the mirror, if any
	if mirror := d.ArtifactMirror(); mirror != nil {
		location, err := mirror.Put(ctx, artifact.FileName(controlling, dependent), csv)
		if err != nil {
			return "", err
		}
		logger.Infof(ctx, `Output mirrored to %s`, location)
	}

	logger.Infof(ctx, `Output generated at %s`, writer.AbsPath(path))
	return csv, nil
}
