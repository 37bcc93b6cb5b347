package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		matches []string
		rejects []string
	}{
		{
			name:    "wildcard suffix",
			pattern: "c.*",
			matches: []string{"c.yml.yml", "c.settings.yml", "c.a.b.yml"},
			rejects: []string{"c.yaml", "cc.settings.yml", "xc.settings.yml"},
		},
		{
			name:    "literal name",
			pattern: "system.site",
			matches: []string{"system.site.yml"},
			rejects: []string{"system.site.extra.yml", "system_site.yml", "system.siteXyml"},
		},
		{
			name:    "accidental extension after export",
			pattern: "views.view.export.yml",
			matches: []string{"views.view.export.yml"},
			rejects: []string{"views.view.export.yml.yml"},
		},
		{
			name:    "extension kept on plain name",
			pattern: "system.site.yml",
			matches: []string{"system.site.yml.yml"},
			rejects: []string{"system.site.yml"},
		},
		{
			name:    "export without extension",
			pattern: "views.view.export",
			matches: []string{"views.view.export.yml"},
		},
		{
			name:    "regex metacharacters are literal",
			pattern: "a+b(c)",
			matches: []string{"a+b(c).yml"},
			rejects: []string{"aab(c).yml", "abc.yml"},
		},
		{
			name:    "wildcard in the middle",
			pattern: "field.*.node.*",
			matches: []string{"field.storage.node.body.yml", "field.field.node.article.body.yml"},
			rejects: []string{"field.storage.user.picture.yml"},
		},
		{
			name:    "extension required at end",
			pattern: "c.*",
			rejects: []string{"c.settings.yml.bak", "c.settings.yml~"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := Compile([]string{tt.pattern})
			assert.Len(t, rules, 1)
			for _, m := range tt.matches {
				assert.True(t, rules.Match(m), "%q should match %q", tt.pattern, m)
			}
			for _, r := range tt.rejects {
				assert.False(t, rules.Match(r), "%q should not match %q", tt.pattern, r)
			}
		})
	}
}

func TestRuleMatchesBaseName(t *testing.T) {
	rules := Compile([]string{"language.*"})
	assert.True(t, rules.Match("language/fr/language.entity.fr.yml"))
	assert.False(t, rules.Match("language/fr/system.site.yml"))
}

func TestCompilePreservesOrder(t *testing.T) {
	rules := Compile([]string{"a.*", "*", "b.*"})
	assert.Equal(t, "a.*", rules[0].Raw)
	assert.Equal(t, "*", rules[1].Raw)
	assert.Equal(t, "b.*", rules[2].Raw)

	assert.Equal(t, 0, rules.First("a.x.yml"))
	assert.Equal(t, 1, rules.First("b.x.yml"))
	assert.Equal(t, -1, Rules{}.First("b.x.yml"))
}

func TestCompileIsPure(t *testing.T) {
	raw := []string{"c.*", "system.site"}
	first := Compile(raw)
	second := Compile(raw)
	for i := range first {
		assert.Equal(t, first[i].String(), second[i].String())
	}
	assert.Equal(t, []string{"c.*", "system.site"}, raw)
}

func TestCompileModuleExcludes(t *testing.T) {
	rules := CompileModuleExcludes([]string{"node", "devel"})
	assert.Len(t, rules, 2)

	assert.True(t, rules.Match("node.settings.yml"))
	assert.True(t, rules.Match("node.type.article.yml"))
	assert.True(t, rules.Match("devel.settings.yml"))

	assert.False(t, rules.Match("nodequeue.settings.yml"))
	assert.False(t, rules.Match("core.extension.yml"))
	assert.False(t, rules.Match("field.storage.node.body.yml"))
}

func TestEmpty(t *testing.T) {
	assert.True(t, Compile(nil).Empty())
	assert.False(t, Compile([]string{"x"}).Empty())
}

func TestCompileExpression(t *testing.T) {
	assert.Equal(t, `^system\.site\.yml\.yml$`, Compile([]string{"system.site.yml"})[0].String())
	assert.Equal(t, `^views\.view\.export\.yml$`, Compile([]string{"views.view.export.yml"})[0].String())
	assert.Equal(t, `^c\..*\.yml$`, Compile([]string{"c.*"})[0].String())
}
