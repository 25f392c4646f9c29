package salesforce

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfpd/picklist-dependency/internal/pkg/log"
	"github.com/sfpd/picklist-dependency/internal/pkg/picklist"
	"github.com/sfpd/picklist-dependency/internal/pkg/telemetry"
	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

const (
	testInstanceURL = "https://acme.my.salesforce.com"
	testEndpoint    = testInstanceURL + "/services/Soap/m/60.0"
)

const subStatusResponse = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns="http://soap.sforce.com/2006/04/metadata" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <soapenv:Body>
    <readMetadataResponse>
      <result>
        <records xsi:type="CustomField">
          <fullName>Case.SubStatus__c</fullName>
          <label>SubStatus</label>
          <type>Picklist</type>
          <valueSet>
            <controllingField>Status</controllingField>
            <restricted>true</restricted>
            <valueSetDefinition>
              <sorted>false</sorted>
              <value><fullName>Closed</fullName><default>false</default><label>Closed</label></value>
              <value><fullName>Open</fullName><default>false</default><label>Open</label></value>
            </valueSetDefinition>
            <valueSettings>
              <controllingFieldValue>Inactive</controllingFieldValue>
              <controllingFieldValue>Pending</controllingFieldValue>
              <valueName>Closed</valueName>
            </valueSettings>
            <valueSettings>
              <controllingFieldValue>Active</controllingFieldValue>
              <valueName>Open</valueName>
            </valueSettings>
          </valueSet>
        </records>
      </result>
    </readMetadataResponse>
  </soapenv:Body>
</soapenv:Envelope>`

const notFoundResponse = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns="http://soap.sforce.com/2006/04/metadata" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <soapenv:Body>
    <readMetadataResponse>
      <result>
        <records xsi:nil="true"/>
      </result>
    </readMetadataResponse>
  </soapenv:Body>
</soapenv:Envelope>`

const faultResponse = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:sf="http://soap.sforce.com/2006/04/metadata">
  <soapenv:Body>
    <soapenv:Fault>
      <faultcode>sf:INVALID_SESSION_ID</faultcode>
      <faultstring>INVALID_SESSION_ID: Invalid Session ID found in SessionHeader: Illegal Session</faultstring>
    </soapenv:Fault>
  </soapenv:Body>
</soapenv:Envelope>`

func newTestAPI(t *testing.T, logger log.Logger) (*MetadataAPI, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	client := NewClient(logger, telemetry.NewNop(), testInstanceURL+"/", WithTransport(transport))
	return NewMetadataAPI(client, telemetry.NewNop(), "my-token", ""), transport
}

func TestMetadataAPI_ReadCustomField(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	api, transport := newTestAPI(t, logger)

	var requestBody string
	transport.RegisterResponder(http.MethodPost, testEndpoint, func(req *http.Request) (*http.Response, error) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		requestBody = string(body)
		assert.Equal(t, `""`, req.Header.Get("SOAPAction"))
		assert.Equal(t, "text/xml; charset=UTF-8", req.Header.Get("Content-Type"))
		return httpmock.NewStringResponse(http.StatusOK, subStatusResponse), nil
	})

	field, err := api.ReadCustomField(context.Background(), "Case.SubStatus__c")
	require.NoError(t, err)
	assert.Equal(t, picklist.FieldMetadata{
		FullName: "Case.SubStatus__c",
		Label:    "SubStatus",
		Type:     "Picklist",
		ValueSet: &picklist.ValueSet{
			ControllingField: "Status",
			ValueSettings: []picklist.ValueSetting{
				{ValueName: "Closed", ControllingFieldValue: []string{"Inactive", "Pending"}},
				{ValueName: "Open", ControllingFieldValue: []string{"Active"}},
			},
		},
	}, field)

	expectedBody := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:met="http://soap.sforce.com/2006/04/metadata">` +
		`<soapenv:Header><met:SessionHeader><met:sessionId>my-token</met:sessionId></met:SessionHeader></soapenv:Header>` +
		`<soapenv:Body><met:readMetadata><met:type>CustomField</met:type><met:fullNames>Case.SubStatus__c</met:fullNames></met:readMetadata></soapenv:Body>` +
		`</soapenv:Envelope>`
	assert.Equal(t, expectedBody, requestBody)

	logger.AssertJSONMessages(t, `{"level":"debug","message":"POST https://acme.my.salesforce.com/services/Soap/m/60.0 | 200 | %s","component":"salesforce"}`)
}

func TestMetadataAPI_ReadCustomField_NotFound(t *testing.T) {
	t.Parallel()
	api, transport := newTestAPI(t, log.NewNopLogger())
	transport.RegisterResponder(http.MethodPost, testEndpoint, httpmock.NewStringResponder(http.StatusOK, notFoundResponse))

	field, err := api.ReadCustomField(context.Background(), "Case.Missing__c")
	require.NoError(t, err)
	assert.Empty(t, field.FullName)

	err = picklist.CheckDependentField(context.Background(), "Case.Missing__c", field)
	assert.Equal(t, picklist.FieldNotFoundError{Field: "Case.Missing__c"}, err)
}

func TestMetadataAPI_ReadCustomField_Fault(t *testing.T) {
	t.Parallel()
	api, transport := newTestAPI(t, log.NewNopLogger())
	transport.RegisterResponder(http.MethodPost, testEndpoint, httpmock.NewStringResponder(http.StatusInternalServerError, faultResponse))

	_, err := api.ReadCustomField(context.Background(), "Case.SubStatus__c")
	var fault *Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "sf:INVALID_SESSION_ID", fault.Code)
	assert.Equal(t, `metadata API fault "sf:INVALID_SESSION_ID": INVALID_SESSION_ID: Invalid Session ID found in SessionHeader: Illegal Session`, err.Error())
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestMetadataAPI_ReadCustomField_HTTPError(t *testing.T) {
	t.Parallel()
	api, transport := newTestAPI(t, log.NewNopLogger())
	transport.RegisterResponder(http.MethodPost, testEndpoint, httpmock.NewStringResponder(http.StatusServiceUnavailable, "unavailable"))

	_, err := api.ReadCustomField(context.Background(), "Case.SubStatus__c")
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.Equal(t, "POST https://acme.my.salesforce.com/services/Soap/m/60.0 | returned http code 503", err.Error())

	// No retry
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestMaskSessionID(t *testing.T) {
	t.Parallel()
	assert.Equal(
		t,
		"<met:SessionHeader><met:sessionId>*****</met:sessionId></met:SessionHeader>",
		maskSessionID("<met:SessionHeader><met:sessionId>secret</met:sessionId></met:SessionHeader>"),
	)
}

func TestMetadataAPI_Spans(t *testing.T) {
	t.Parallel()
	tel := telemetry.NewForTest(t)
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodPost, testEndpoint, httpmock.NewStringResponder(http.StatusOK, subStatusResponse))
	client := NewClient(log.NewNopLogger(), tel, testInstanceURL, WithTransport(transport))
	api := NewMetadataAPI(client, tel, "my-token", "60.0")

	_, err := api.ReadCustomField(context.Background(), "Case.SubStatus__c")
	require.NoError(t, err)
	assert.Contains(t, tel.SpanNames(), "sfpd.salesforce.metadata.readCustomField")
}
