package cooker

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"recipe-cook-api/core/errors"
	"recipe-cook-api/core/recipe"
	"recipe-cook-api/core/translation"
)

// dummyContainer mirrors a category row with one field per primitive kind.
type dummyContainer struct {
	Name    string
	ID      string
	Long    int64
	Char    rune
	Double  float64
	Boolean bool
	Float   float32
	Short   int16
	Byte    int8
	Extras  map[string]interface{}
}

type lightCastContainer struct {
	Name string
}

type photo struct {
	AlbumID      int
	ID           int
	Title        string
	URL          string
	ThumbnailURL string
}

type dummyContainerTranslator struct{}

func (dummyContainerTranslator) InstantiateModel() *dummyContainer { return &dummyContainer{} }

func (dummyContainerTranslator) SetMemberVariable(c *dummyContainer, field string, value interface{}) (bool, error) {
	s := text(value)
	var err error
	switch field {
	case "mName":
		c.Name = s
	case "mId":
		c.ID = s
	case "mLong":
		c.Long, err = strconv.ParseInt(s, 10, 64)
	case "mChar":
		if s == "" {
			return false, nil
		}
		c.Char = []rune(s)[0]
	case "mDouble":
		c.Double, err = strconv.ParseFloat(s, 64)
	case "mBoolean":
		c.Boolean, err = strconv.ParseBool(s)
	case "mFloat":
		var f float64
		f, err = strconv.ParseFloat(s, 32)
		c.Float = float32(f)
	case "mShort":
		var n int64
		n, err = strconv.ParseInt(s, 10, 16)
		c.Short = int16(n)
	case "mByte":
		var n int64
		n, err = strconv.ParseInt(s, 10, 8)
		c.Byte = int8(n)
	case translation.KeyDataTypeField, translation.LiveField, translation.ContentTypeField:
		if c.Extras == nil {
			c.Extras = make(map[string]interface{})
		}
		c.Extras[field] = value
	default:
		return false, nil
	}
	if err != nil {
		return false, &errors.TranslationError{Translator: "DummyContainerTranslator", Field: field, Message: "bad value", Cause: err}
	}
	return true, nil
}

func (dummyContainerTranslator) ValidateModel(c *dummyContainer) bool { return c.Name != "" }
func (dummyContainerTranslator) Name() string                         { return "DummyContainerTranslator" }

// pickyTranslator rejects every container whose name starts with D.
type pickyTranslator struct{ dummyContainerTranslator }

func (pickyTranslator) ValidateModel(c *dummyContainer) bool { return !strings.HasPrefix(c.Name, "D") }
func (pickyTranslator) Name() string                         { return "PickyTranslator" }

func text(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	}
	return fmt.Sprint(v)
}

func newTestEngine(opts ...Option) *Engine {
	e := New(opts...)
	translation.RegisterType[dummyContainer](e.Models(), "DummyContainer")
	translation.RegisterType[lightCastContainer](e.Models(), "DummyLightCastContainer")
	translation.RegisterType[photo](e.Models(), "PhotoModel")
	e.AddTranslatorImpl(translation.Adapt[*dummyContainer](dummyContainerTranslator{}))
	e.AddTranslatorImpl(translation.Adapt[*dummyContainer](pickyTranslator{}))
	return e
}

func readFeed(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(b)
}

func newRecipe(tags map[string]interface{}) *recipe.Recipe {
	r := recipe.New()
	for _, k := range []string{"cooker", "format", "model", "modelType", "translator", "query", "queryResultType", "keyDataPath", "matchList"} {
		if v, ok := tags[k]; ok {
			r.Set(k, v)
		}
	}
	for k, v := range tags {
		if !r.Contains(k) {
			r.Set(k, v)
		}
	}
	return r
}

func jsonContainerRecipe() *recipe.Recipe {
	return newRecipe(map[string]interface{}{
		"cooker":    "DynamicParser",
		"format":    "json",
		"model":     "DummyContainer",
		"modelType": "array",
		"query":     "$.categories[?(@.type == 'category')]",
		"matchList": []interface{}{
			"info/title@mName",
			"categoryId@mId",
			"info/long@mLong",
			"info/char@mChar",
			"info/double@mDouble",
			"info/boolean@mBoolean",
			"info/float@mFloat",
			"info/short@mShort",
			"info/byte@mByte",
		},
	})
}

func xmlContainerRecipe() *recipe.Recipe {
	return newRecipe(map[string]interface{}{
		"cooker":    "DynamicParser",
		"format":    "xml",
		"model":     "DummyContainer",
		"modelType": "array",
		"query":     "sample/categories[type='category']",
		"matchList": []interface{}{
			"info/title/#text@mName",
			"categoryId/#text@mId",
			"info/long/#text@mLong",
			"info/char/#text@mChar",
			"info/double/#text@mDouble",
			"info/boolean/#text@mBoolean",
			"info/float/#text@mFloat",
			"info/short/#text@mShort",
			"info/byte/#text@mByte",
		},
	})
}

func photoRecipe(format string) *recipe.Recipe {
	if format == "xml" {
		return newRecipe(map[string]interface{}{
			"cooker":    "DynamicParser",
			"format":    "xml",
			"model":     "PhotoModel",
			"modelType": "array",
			"query":     "photos/photo",
			"matchList": []interface{}{
				"albumId/#text@albumId",
				"id/#text@id",
				"title/#text@title",
				"url/#text@url",
				"thumbnailUrl/#text@thumbnailUrl",
			},
		})
	}
	return newRecipe(map[string]interface{}{
		"cooker":    "DynamicParser",
		"format":    "json",
		"model":     "PhotoModel",
		"modelType": "array",
		"query":     "$.photos",
		"matchList": []interface{}{
			"albumId@albumId",
			"id@id",
			"title@title",
			"url@url",
			"thumbnailUrl@thumbnailUrl",
		},
	})
}

// photoFeed generates n photo records in the given format.
func photoFeed(format string, n int) string {
	var b strings.Builder
	if format == "xml" {
		b.WriteString("<photos>")
		for i := 1; i <= n; i++ {
			fmt.Fprintf(&b, "<photo><albumId>%d</albumId><id>%d</id><title>photo %d</title>"+
				"<url>https://img.example.com/%d.png</url><thumbnailUrl>https://img.example.com/t/%d.png</thumbnailUrl></photo>",
				i/50+1, i, i, i, i)
		}
		b.WriteString("</photos>")
		return b.String()
	}
	b.WriteString(`{"photos":[`)
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `{"albumId":%d,"id":%d,"title":"photo %d","url":"https://img.example.com/%d.png","thumbnailUrl":"https://img.example.com/t/%d.png"}`,
			i/50+1, i, i, i, i)
	}
	b.WriteString("]}")
	return b.String()
}

// recorder captures every callback. finished is closed by the first
// OnPostRecipeCooked or OnRecipeError.
type recorder struct {
	mu         sync.Mutex
	pre        int
	cooked     []interface{}
	dones      []bool
	post       int
	postOutput interface{}
	extras     []map[string]interface{}
	errs       []error
	msgs       []string

	once     sync.Once
	finished chan struct{}
}

func newRecorder() *recorder {
	return &recorder{finished: make(chan struct{})}
}

func (r *recorder) OnPreRecipeCook(_ *recipe.Recipe, _ interface{}, extras map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pre++
}

func (r *recorder) OnRecipeCooked(_ *recipe.Recipe, output interface{}, extras map[string]interface{}, done bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cooked = append(r.cooked, output)
	r.dones = append(r.dones, done)
	r.extras = append(r.extras, extras)
}

func (r *recorder) OnPostRecipeCooked(_ *recipe.Recipe, output interface{}, _ map[string]interface{}) {
	r.mu.Lock()
	r.post++
	r.postOutput = output
	r.mu.Unlock()
	r.once.Do(func() { close(r.finished) })
}

func (r *recorder) OnRecipeError(_ *recipe.Recipe, err error, msg string) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
	r.once.Do(func() { close(r.finished) })
}

func (r *recorder) doneCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.dones {
		if d {
			n++
		}
	}
	return n
}
