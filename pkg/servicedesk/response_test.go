package servicedesk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCreateRequestResponse(t *testing.T) {
	data := []byte(`{
		"reporter": {"email": "agent@example.com", "displayName": "Agent"},
		"requestTypeName": "Report a problem",
		"key": "SUP-101",
		"issue": {
			"id": 10500,
			"key": "SUP-101",
			"summary": "VPN is down",
			"status": "Waiting for support",
			"fields": [{"id": "summary", "label": "Summary", "value": {"text": "VPN is down"}}]
		},
		"issueLinkUrl": "https://example.atlassian.net/servicedesk/customer/portal/3/SUP-101"
	}`)

	resp, err := ParseCreateRequestResponse(data)
	require.NoError(t, err)

	assert.Equal(t, "SUP-101", resp.Key)
	assert.Equal(t, "Agent", resp.Reporter.DisplayName)
	assert.Equal(t, int64(10500), resp.Issue.ID)
	require.Len(t, resp.Issue.Fields, 1)
	assert.Equal(t, "Summary", resp.Issue.Fields[0].Label)
}

func TestParseCreateRequestResponse_Malformed(t *testing.T) {
	_, err := ParseCreateRequestResponse([]byte("<html>maintenance</html>"))
	assert.ErrorContains(t, err, "decode create response")
}
