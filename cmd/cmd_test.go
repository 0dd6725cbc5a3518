package cmd

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashiz/internal/auth"
	"github.com/abhisek/flashiz/internal/devserver"
)

type cli struct {
	t    *testing.T
	base []string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	srv := httptest.NewServer(devserver.New("test-secret"))
	t.Cleanup(srv.Close)
	return &cli{t: t, base: []string{
		"--api-url", srv.URL,
		"--db", filepath.Join(t.TempDir(), "flashiz.db"),
	}}
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, c.base...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run("", args...)
	require.NoError(c.t, err, out)
	return out
}

func TestCLI_AccountDeckAndStatsFlow(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("register", "--name", "Ada", "--email", "ada@example.com",
		"--password", "secret1", "--confirm", "secret1")
	assert.Contains(t, out, auth.MsgRegistered)

	out = c.mustRun("whoami")
	assert.Contains(t, out, "Not signed in.")

	out = c.mustRun("login", "--email", "ada@example.com", "--password", "secret1")
	assert.Contains(t, out, "Signed in as Ada <ada@example.com>")

	out = c.mustRun("whoami")
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "valid until")

	out = c.mustRun("decks", "create", "Capitals",
		"--card", "France|Paris|Lyon|Nice",
		"--card", "Italy|Rome|Milan|Turin")
	assert.Contains(t, out, `New deck "Capitals" created with 2 card(s)!`)

	out = c.mustRun("decks", "list")
	assert.Contains(t, out, "Capitals")

	out = c.mustRun("stats")
	assert.Contains(t, out, "Overall accuracy: 0%")
	assert.Contains(t, out, "No deck statistics available yet.")

	out = c.mustRun("stats", "--json")
	assert.Contains(t, out, `"overallAccuracy": 0`)

	out = c.mustRun("reset", "--yes")
	assert.Contains(t, out, "Statistics reset successfully")

	out = c.mustRun("history")
	assert.Contains(t, out, "No quizzes yet.")

	out = c.mustRun("logout")
	assert.Contains(t, out, "Signed out.")
}

func TestCLI_LoginRejectsInvalidForm(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "login", "--email", "not-an-email", "--password", "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), auth.MsgEmailInvalid)
}

func TestCLI_LoginPromptsForPassword(t *testing.T) {
	c := newCLI(t)
	c.mustRun("register", "--name", "Ada", "--email", "ada@example.com",
		"--password", "secret1", "--confirm", "secret1")

	out, err := c.run("secret1\n", "login", "--email", "ada@example.com", "--password", "")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "Signed in as Ada")
}

func TestCLI_ResetCancelled(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("n\n", "reset", "--yes=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
}

func TestParseCard(t *testing.T) {
	front, back, wrong, err := parseCard("France|Paris|Lyon|Nice")
	require.NoError(t, err)
	assert.Equal(t, "France", front)
	assert.Equal(t, "Paris", back)
	assert.Equal(t, []string{"Lyon", "Nice"}, wrong)

	_, _, _, err = parseCard("France")
	assert.Error(t, err)

	_, _, _, err = parseCard("a|b|1|2|3|4")
	assert.Error(t, err)
}
