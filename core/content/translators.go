// ABOUTME: Translators that build Content and Container models without reflection
// ABOUTME: Unknown fields land in the model's extras; validation mirrors the model rules

package content

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"recipe-cook-api/core/cooker"
	"recipe-cook-api/core/errors"
	"recipe-cook-api/core/translation"
	"recipe-cook-api/pkg/utils/duration"
)

// Registry names.
const (
	ContentModelName               = "Content"
	ContainerModelName             = "ContentContainer"
	ContentTranslatorName          = "ContentTranslator"
	ContentContainerTranslatorName = "ContentContainerTranslator"
)

// ContentTranslator builds Content models.
type ContentTranslator struct{}

func (ContentTranslator) InstantiateModel() *Content { return New() }

func (ContentTranslator) Name() string { return ContentTranslatorName }

// SetMemberVariable assigns one match-list value. A nil value is accepted and
// ignored since optional fields are often absent from a feed.
func (t ContentTranslator) SetMemberVariable(c *Content, field string, value interface{}) (bool, error) {
	if c == nil || field == "" {
		return false, nil
	}
	if value == nil {
		return true, nil
	}

	var err error
	switch field {
	case TitleField:
		c.Title = text(value)
	case DescriptionField:
		c.Description = text(value)
	case IDField:
		c.ID = text(value)
	case SubtitleField:
		c.Subtitle = text(value)
	case URLField:
		c.URL = text(value)
	case CardImageURLField:
		c.CardImageURL = text(value)
	case BackgroundImageURLField:
		c.BackgroundImageURL = text(value)
	case TagsField:
		c.Tags, err = stringList(value)
	case ClosedCaptionField:
		c.CloseCaptionURLs, err = stringList(value)
	case RecommendationsField:
		c.Recommendations, err = stringList(value)
	case AvailableDateField:
		c.AvailableDate = text(value)
	case SubscriptionRequiredField:
		c.SubscriptionRequired, err = boolean(value)
	case ChannelIDField:
		c.ChannelID = text(value)
	case DurationField:
		c.Duration, err = duration.Seconds(text(value))
	case AdCuePointsField:
		c.AdCuePoints, err = intList(value)
	case StudioField:
		c.Studio = text(value)
	case FormatField:
		c.Format = text(value)
	default:
		c.SetExtraValue(field, value)
	}
	if err != nil {
		return false, &errors.TranslationError{
			Translator: t.Name(),
			Field:      field,
			Message:    fmt.Sprintf("cannot use %v", value),
			Cause:      err,
		}
	}
	return true, nil
}

// ValidateModel requires title, description, url and both image urls.
func (ContentTranslator) ValidateModel(c *Content) bool {
	return c.IsValid()
}

// ContainerTranslator builds Container models.
type ContainerTranslator struct{}

func (ContainerTranslator) InstantiateModel() *Container { return NewContainer() }

func (ContainerTranslator) Name() string { return ContentContainerTranslatorName }

// SetMemberVariable refuses nil values; a container without a name is useless.
func (ContainerTranslator) SetMemberVariable(cc *Container, field string, value interface{}) (bool, error) {
	if cc == nil || field == "" || value == nil {
		return false, nil
	}
	if field == NameField {
		name, ok := value.(string)
		if !ok {
			return false, nil
		}
		cc.Name = name
		return true, nil
	}
	cc.SetExtraValue(field, value)
	return true, nil
}

func (ContainerTranslator) ValidateModel(cc *Container) bool {
	return cc != nil && cc.Name != ""
}

// Register adds the content models and translators to an engine. It reports
// false when any of them was already registered.
func Register(e *cooker.Engine) bool {
	ok := translation.RegisterType[Content](e.Models(), ContentModelName)
	ok = translation.RegisterType[Container](e.Models(), ContainerModelName) && ok
	ok = e.AddTranslatorImpl(translation.Adapt[*Content](ContentTranslator{})) && ok
	ok = e.AddTranslatorImpl(translation.Adapt[*Container](ContainerTranslator{})) && ok
	return ok
}

func text(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}

func boolean(v interface{}) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return strconv.ParseBool(strings.TrimSpace(text(v)))
}

// stringList accepts a list value, a JSON array string or a single value.
func stringList(v interface{}) ([]string, error) {
	switch x := v.(type) {
	case []string:
		return x, nil
	case []interface{}:
		out := make([]string, 0, len(x))
		for _, item := range x {
			out = append(out, text(item))
		}
		return out, nil
	case string:
		s := strings.TrimSpace(x)
		if !strings.HasPrefix(s, "[") {
			return []string{x}, nil
		}
		if !gjson.Valid(s) {
			return nil, fmt.Errorf("expected a JSON array, got %q", x)
		}
		items := gjson.Parse(s).Array()
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, item.String())
		}
		return out, nil
	}
	return []string{text(v)}, nil
}

func intList(v interface{}) ([]int, error) {
	strs, err := stringList(v)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(strs))
	for _, s := range strs {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
