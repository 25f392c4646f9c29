package salesforce

import (
	"context"
	"encoding/xml"
	"net/http"

	"github.com/umisama/go-regexpcache"
	"go.opentelemetry.io/otel/attribute"

	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/picklist"
	"github.com/sfpd/picklist-dependency/internal/pkg/telemetry"
	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

const (
	metadataNamespace = "http://soap.sforce.com/2006/04/metadata"
	soapNamespace     = "http://schemas.xmlsoap.org/soap/envelope/"
	metadataPath      = "/services/Soap/m/{version}"
	customFieldType   = "CustomField"
)

// MetadataAPI reads metadata by the SOAP "readMetadata" call.
type MetadataAPI struct {
	client      *Client
	telemetry   telemetry.Telemetry
	logger      log.Logger
	accessToken string
	apiVersion  string
}

func NewMetadataAPI(client *Client, tel telemetry.Telemetry, accessToken, apiVersion string) *MetadataAPI {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return &MetadataAPI{
		client:      client,
		telemetry:   tel,
		logger:      client.logger,
		accessToken: accessToken,
		apiVersion:  apiVersion,
	}
}

// ReadCustomField reads definition of the field, for example "Account.SubStatus__c".
// If the field does not exist, the returned FieldMetadata has an empty FullName.
func (a *MetadataAPI) ReadCustomField(ctx context.Context, fullName string) (field picklist.FieldMetadata, err error) {
	ctx, span := a.telemetry.Tracer().Start(ctx, "sfpd.salesforce.metadata.readCustomField")
	span.SetAttributes(attribute.String("field", fullName), attribute.String("apiVersion", a.apiVersion))
	defer span.End(&err)

	body, err := xml.Marshal(newReadMetadataRequest(a.accessToken, customFieldType, fullName))
	if err != nil {
		return field, errors.PrefixError(err, "cannot encode metadata request")
	}

	res, err := a.client.NewRequest(ctx).
		SetPathParam("version", a.apiVersion).
		SetHeader("Content-Type", "text/xml; charset=UTF-8").
		SetHeader("SOAPAction", `""`).
		SetBody(append([]byte(xml.Header), body...)).
		Post(metadataPath)
	if err != nil {
		return field, errors.PrefixErrorf(err, `cannot read metadata of field "%s"`, fullName)
	}

	envelope := &readMetadataResponse{}
	decodeErr := xml.Unmarshal(res.Body(), envelope)
	switch {
	case decodeErr == nil && envelope.Body.Fault != nil:
		return field, envelope.Body.Fault
	case res.IsError():
		return field, &HTTPError{Method: http.MethodPost, URL: res.Request.URL, StatusCode: res.StatusCode()}
	case decodeErr != nil:
		return field, errors.PrefixError(decodeErr, "cannot decode metadata response")
	}

	records := envelope.Body.Response.Records
	if len(records) == 0 {
		return field, nil
	}
	return records[0].toFieldMetadata(), nil
}

type readMetadataRequest struct {
	XMLName       xml.Name `xml:"soapenv:Envelope"`
	SoapNamespace string   `xml:"xmlns:soapenv,attr"`
	MetaNamespace string   `xml:"xmlns:met,attr"`
	SessionID     string   `xml:"soapenv:Header>met:SessionHeader>met:sessionId"`
	Type          string   `xml:"soapenv:Body>met:readMetadata>met:type"`
	FullNames     []string `xml:"soapenv:Body>met:readMetadata>met:fullNames"`
}

type readMetadataResponse struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Fault    *Fault `xml:"Fault"`
		Response struct {
			Records []customFieldRecord `xml:"result>records"`
		} `xml:"readMetadataResponse"`
	} `xml:"Body"`
}

type customFieldRecord struct {
	FullName string `xml:"fullName"`
	Label    string `xml:"label"`
	Type     string `xml:"type"`
	ValueSet *struct {
		ControllingField string `xml:"controllingField"`
		ValueSettings    []struct {
			ValueName             string   `xml:"valueName"`
			ControllingFieldValue []string `xml:"controllingFieldValue"`
		} `xml:"valueSettings"`
	} `xml:"valueSet"`
}

func newReadMetadataRequest(sessionID, metadataType string, fullNames ...string) readMetadataRequest {
	return readMetadataRequest{
		SoapNamespace: soapNamespace,
		MetaNamespace: metadataNamespace,
		SessionID:     sessionID,
		Type:          metadataType,
		FullNames:     fullNames,
	}
}

func (r customFieldRecord) toFieldMetadata() picklist.FieldMetadata {
	out := picklist.FieldMetadata{FullName: r.FullName, Label: r.Label, Type: r.Type}
	if r.ValueSet != nil {
		out.ValueSet = &picklist.ValueSet{ControllingField: r.ValueSet.ControllingField}
		for _, vs := range r.ValueSet.ValueSettings {
			out.ValueSet.ValueSettings = append(out.ValueSet.ValueSettings, picklist.ValueSetting{
				ValueName:             vs.ValueName,
				ControllingFieldValue: vs.ControllingFieldValue,
			})
		}
	}
	return out
}

// maskSessionID hides the session ID in the debug output.
func maskSessionID(body string) string {
	return regexpcache.MustCompile(`(<met:sessionId>)[^<]*(</met:sessionId>)`).ReplaceAllString(body, "${1}*****${2}")
}
