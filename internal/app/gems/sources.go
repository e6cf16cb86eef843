package gems

// Grant and spend sources are whitelisted so ledger rows always name where a
// balance change came from.

var issueSources = map[string]bool{
	"purchase":     true,
	"reward":       true,
	"event":        true,
	"compensation": true,
	"admin":        true,
}

var useSources = map[string]bool{
	"create_character": true,
	"revive":           true,
	"shop_item":        true,
	"gacha":            true,
	"upgrade":          true,
}

func IsValidIssueSource(source string) bool { return issueSources[source] }

func IsValidUseSource(source string) bool { return useSources[source] }
