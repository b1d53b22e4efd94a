package servicedesk

import (
	"encoding/json"
	"fmt"
)

// Reporter identifies the account a request was raised by.
type Reporter struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
	AccountID   string `json:"accountId"`
}

// IssueField is one rendered field of the created issue.
type IssueField struct {
	ID    string         `json:"id"`
	Label string         `json:"label"`
	Value map[string]any `json:"value"`
}

// Issue is the created request as the confirmation response describes it.
type Issue struct {
	ID               int64        `json:"id"`
	Key              string       `json:"key"`
	Reporter         Reporter     `json:"reporter"`
	Participants     []string     `json:"participants"`
	Organisations    []string     `json:"organisations"`
	Sequence         int64        `json:"sequence"`
	ServiceDeskKey   string       `json:"serviceDeskKey"`
	RequestTypeName  string       `json:"requestTypeName"`
	RequestTypeID    int64        `json:"requestTypeId"`
	Summary          string       `json:"summary"`
	IsNew            bool         `json:"isNew"`
	Status           string       `json:"status"`
	Date             string       `json:"date"`
	FriendlyDate     string       `json:"friendlyDate"`
	Fields           []IssueField `json:"fields"`
	ActivityStream   []string     `json:"activityStream"`
	RequestIcon      int64        `json:"requestIcon"`
	IconURL          string       `json:"iconUrl"`
	CanBrowse        bool         `json:"canBrowse"`
	CanAttach        bool         `json:"canAttach"`
	CategoryKey      string       `json:"categoryKey"`
	CreatorAccountID string       `json:"creatorAccountId"`
	FormKey          string       `json:"formKey"`
}

// CreateRequestResponse is the confirmation the portal returns after a
// successful submission.
type CreateRequestResponse struct {
	Reporter              Reporter `json:"reporter"`
	RequestTypeName       string   `json:"requestTypeName"`
	Key                   string   `json:"key"`
	IssueType             string   `json:"issueType"`
	IssueTypeName         string   `json:"issueTypeName"`
	Issue                 Issue    `json:"issue"`
	CanCreateIssues       bool     `json:"canCreateIssues"`
	CanAddComment         bool     `json:"canAddComment"`
	IssueLinkURL          string   `json:"issueLinkUrl"`
	RequestDetailsBaseURL string   `json:"requestDetailsBaseUrl"`
}

// ParseCreateRequestResponse decodes a confirmation response body.
func ParseCreateRequestResponse(data []byte) (*CreateRequestResponse, error) {
	var out CreateRequestResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("servicedesk: decode create response: %w", err)
	}
	return &out, nil
}
