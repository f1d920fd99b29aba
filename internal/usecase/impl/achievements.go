package impl

import (
	"github.com/spf13/cast"
)

// achievementRule is one row of the fixed unlock table: an action name plus a
// numeric threshold on one metadata field. Flat rules, no state machine.
type achievementRule struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Action      string // incoming action name this rule listens to
	MetadataKey string // metadata field holding the counter
	Threshold   int    // unlock when counter >= threshold
}

// achievementRules is evaluated in order; order also fixes the display order
// of the badge table.
var achievementRules = []achievementRule{
	{
		ID:          "first_purchase",
		Title:       "First Purchase",
		Description: "Bought your first handcrafted piece",
		Icon:        "🛍️",
		Action:      "purchase",
		MetadataKey: "totalPurchases",
		Threshold:   1,
	},
	{
		ID:          "art_enthusiast",
		Title:       "Art Enthusiast",
		Description: "Collected five pieces from the marketplace",
		Icon:        "🎨",
		Action:      "purchase",
		MetadataKey: "totalPurchases",
		Threshold:   5,
	},
	{
		ID:          "collector",
		Title:       "Collector",
		Description: "Built a collection of twenty pieces",
		Icon:        "🏺",
		Action:      "purchase",
		MetadataKey: "totalPurchases",
		Threshold:   20,
	},
	{
		ID:          "social_butterfly",
		Title:       "Social Butterfly",
		Description: "Following ten artisans",
		Icon:        "🦋",
		Action:      "follow",
		MetadataKey: "followingCount",
		Threshold:   10,
	},
	{
		ID:          "trendsetter",
		Title:       "Trendsetter",
		Description: "Shared twenty-five finds with friends",
		Icon:        "📣",
		Action:      "share",
		MetadataKey: "shareCount",
		Threshold:   25,
	},
	{
		ID:          "storyteller",
		Title:       "Storyteller",
		Description: "Published your first post",
		Icon:        "✍️",
		Action:      "post",
		MetadataKey: "postCount",
		Threshold:   1,
	},
}

// matches reports whether the incoming action satisfies this rule. Metadata
// values arrive loosely typed (ints, floats, strings), hence the cast.
func (r achievementRule) matches(action string, metadata map[string]any) bool {
	if action != r.Action {
		return false
	}

	return cast.ToInt(metadata[r.MetadataKey]) >= r.Threshold
}
