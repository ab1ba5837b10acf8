package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommandQuery(t *testing.T) {
	cases := []struct {
		message  string
		wantName string
		wantOK   bool
	}{
		{"!comando spawn", "spawn", true},
		{"/comando spawn", "spawn", true},
		{"comando: spawn", "spawn", true},
		{"!command jump", "jump", true},
		{"cmd jump", "jump", true},
		{"CMD: Jump", "Jump", true},
		{"dime el !comando   dash-rapido ahora", "dash-rapido", true},
		{"hola que tal", "", false},
		{"los comandos son geniales", "", false},
	}
	for _, c := range cases {
		name, ok := ParseCommandQuery(c.message)
		assert.Equal(t, c.wantOK, ok, c.message)
		assert.Equal(t, c.wantName, name, c.message)
	}
}

func TestContainsAlias(t *testing.T) {
	aliases := DefaultMentionAliases()
	assert.True(t, ContainsAlias("oye paibot, ven", aliases))
	assert.True(t, ContainsAlias("Hola @Paibot", aliases))
	assert.True(t, ContainsAlias("PAIMON dime algo", aliases))
	assert.False(t, ContainsAlias("hola bot", aliases))
	assert.False(t, ContainsAlias("", aliases))
}
