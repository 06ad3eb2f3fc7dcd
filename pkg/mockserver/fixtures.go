package mockserver

import (
	_ "embed"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/default.yaml
var defaultFixtures []byte

// Rule maps a message to a canned reply. Match is a case-insensitive
// substring; an empty Match matches everything. Body, when set, is sent
// verbatim instead of Reply so clients can be fed malformed payloads.
type Rule struct {
	Match  string      `yaml:"match"`
	Status int         `yaml:"status"`
	Reply  interface{} `yaml:"reply"`
	Body   string      `yaml:"body"`
}

type Fixtures struct {
	Rules   []Rule `yaml:"rules"`
	Default Rule   `yaml:"default"`
}

func DefaultFixtures() (*Fixtures, error) {
	return ParseFixtures(defaultFixtures)
}

func LoadFixtures(path string) (*Fixtures, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read fixtures %s", path)
	}
	return ParseFixtures(b)
}

func ParseFixtures(b []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, errors.Wrap(err, "parse fixtures")
	}
	if f.Default.Reply == nil && f.Default.Body == "" {
		f.Default.Reply = map[string]interface{}{"response": "I did not understand that."}
	}
	return &f, nil
}

// Find returns the first rule matching message, or the default rule.
func (f *Fixtures) Find(message string) Rule {
	lower := strings.ToLower(message)
	for _, r := range f.Rules {
		if r.Match == "" || strings.Contains(lower, strings.ToLower(r.Match)) {
			return r
		}
	}
	return f.Default
}
