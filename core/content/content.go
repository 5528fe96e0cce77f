// ABOUTME: Content model for a single playable item produced by recipe cooking
// ABOUTME: Field name constants are the match-list targets recipes write to

package content

import "strings"

// Match-list targets understood by ContentTranslator.
const (
	TitleField                = "mTitle"
	DescriptionField          = "mDescription"
	IDField                   = "mId"
	SubtitleField             = "mSubtitle"
	URLField                  = "mUrl"
	CardImageURLField         = "mCardImageUrl"
	BackgroundImageURLField   = "mBackgroundImageUrl"
	ClosedCaptionField        = "mCloseCaptionUrls"
	TagsField                 = "mTags"
	RecommendationsField      = "mRecommendations"
	AvailableDateField        = "mAvailableDate"
	SubscriptionRequiredField = "mSubscriptionRequired"
	ChannelIDField            = "mChannelId"
	DurationField             = "mDuration"
	AdCuePointsField          = "mAdCuePoints"
	StudioField               = "mStudio"
	FormatField               = "mFormat"
)

// Well-known extras keys.
const (
	MaturityRatingTag  = "maturityRating"
	GenresTag          = "genres"
	LiveTag            = "live"
	StartTimeTag       = "startTime"
	EndTimeTag         = "endTime"
	VideoPreviewURLTag = "videoPreviewUrl"
	ContentTypeTag     = "contentType"
)

// Content is one item of a feed: a video, an episode or a live stream.
type Content struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Subtitle             string   `json:"subtitle,omitempty"`
	Description          string   `json:"description"`
	URL                  string   `json:"url"`
	CardImageURL         string   `json:"cardImageUrl" recipe:"mCardImageUrl"`
	BackgroundImageURL   string   `json:"backgroundImageUrl" recipe:"mBackgroundImageUrl"`
	SubscriptionRequired bool     `json:"subscriptionRequired"`
	Studio               string   `json:"studio,omitempty"`
	AvailableDate        string   `json:"availableDate,omitempty"`
	ChannelID            string   `json:"channelId,omitempty" recipe:"mChannelId"`
	Duration             int64    `json:"duration"`
	Format               string   `json:"format,omitempty"`
	AdCuePoints          []int    `json:"adCuePoints,omitempty"`
	CloseCaptionURLs     []string `json:"closeCaptionUrls,omitempty" recipe:"mCloseCaptionUrls"`
	Tags                 []string `json:"tags,omitempty"`
	Recommendations      []string `json:"recommendations,omitempty"`

	Extras map[string]interface{} `json:"extras,omitempty"`
}

// New creates an empty Content.
func New() *Content {
	return &Content{}
}

// SetExtraValue stores a value that has no dedicated field.
func (c *Content) SetExtraValue(key string, value interface{}) {
	if c.Extras == nil {
		c.Extras = make(map[string]interface{})
	}
	c.Extras[key] = value
}

// ExtraValue returns the extras entry for key, or nil.
func (c *Content) ExtraValue(key string) interface{} {
	if c.Extras == nil {
		return nil
	}
	return c.Extras[key]
}

// IsLive reports whether the content was flagged live by its recipe.
func (c *Content) IsLive() bool {
	live, _ := c.ExtraValue(LiveTag).(bool)
	return live
}

// IsValid reports whether every mandatory field is set. URLs are not checked
// for well-formedness.
func (c *Content) IsValid() bool {
	if c == nil {
		return false
	}
	for _, s := range []string{c.Title, c.Description, c.URL, c.CardImageURL, c.BackgroundImageURL} {
		if strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}
