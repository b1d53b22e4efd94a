package servicedesk

// disposableKeys are presentation-only entries of the customer-models
// response that the parser never reads. Dropping them keeps fixtures and
// cached documents small.
var disposableKeys = map[string]struct{}{
	"key":                        {},
	"portalBaseUrl":              {},
	"onlyPortal":                 {},
	"createPermission":           {},
	"portalAnnouncement":         {},
	"canViewCreateRequestForm":   {},
	"isProjectSimplified":        {},
	"mediaApiUploadInformation":  {},
	"userLanguageHeader":         {},
	"userLanguageMessageWiki":    {},
	"defaultLanguageHeader":      {},
	"defaultLanguageMessage":     {},
	"defaultLanguageDisplayName": {},
	"isUsingLanguageSupport":     {},
	"translations":               {},
	"callToAction":               {},
	"intro":                      {},
	"instructions":               {},
	"icon":                       {},
	"iconUrl":                    {},
	"userOrganisations":          {},
	"canBrowseUsers":             {},
	"requestCreateBaseUrl":       {},
	"requestValidateBaseUrl":     {},
	"calendarParams":             {},
	"kbs":                        {},
	"canRaiseOnBehalf":           {},
	"canSignupCustomers":         {},
	"canCreateAttachments":       {},
	"attachmentRequiredField":    {},
	"hasGroups":                  {},
	"canSubmitWithEmailAddress":  {},
	"showRecaptcha":              {},
	"siteKey":                    {},
	"hasProformaForm":            {},
	"linkedJiraFields":           {},
	"portalWebFragments":         {},
	"headerPanels":               {},
	"subheaderPanels":            {},
	"footerPanels":               {},
	"pagePanels":                 {},
	"localId":                    {},
}

// Prune recursively removes disposable keys from a decoded JSON value and
// returns the cleaned value. Maps and slices are rebuilt, not mutated.
func Prune(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			if _, drop := disposableKeys[key]; drop {
				continue
			}
			out[key] = Prune(item)
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, Prune(item))
		}
		return out
	default:
		return value
	}
}
