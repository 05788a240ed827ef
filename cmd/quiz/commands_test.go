package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/bc-quiz/internal/catalog"
	"github.com/gokatarajesh/bc-quiz/internal/recommend"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("QUIZ_DEFAULT_RULE_SET", "")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRecommendExtendedJSON(t *testing.T) {
	out, err := execute(t, "recommend", "--rule-set", "extended", "--sex", "female", "--yes", "noEstrogen,noDaily", "--json")
	require.NoError(t, err)

	var res recommend.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{catalog.CopperIUD, catalog.HormonalIUD, catalog.Injectable, catalog.ExternalCondoms}, res.Suggested)
	assert.Len(t, res.Others, 5)
}

func TestRecommendClassicText(t *testing.T) {
	out, err := execute(t, "recommend", "--sex", "Female")
	require.NoError(t, err)

	assert.Contains(t, out, "Suggested methods")
	assert.Contains(t, out, "- "+catalog.CombinedPill)
	assert.Contains(t, out, "Prescription Required: Yes")
	assert.Contains(t, out, "Other methods")
}

func TestRecommendMale(t *testing.T) {
	out, err := execute(t, "recommend", "--sex", "male")
	require.NoError(t, err)

	assert.Contains(t, out, "- "+catalog.Vasectomy)
	assert.Contains(t, out, "Duration: Until Surgical Reversal")
	assert.NotContains(t, out, "Other methods")
}

func TestRecommendRejectsBadInput(t *testing.T) {
	_, err := execute(t, "recommend", "--sex", "other")
	assert.ErrorIs(t, err, recommend.ErrInvalidSex)

	_, err = execute(t, "recommend", "--sex", "female", "--yes", "stiProtection")
	assert.Error(t, err, "stiProtection only exists in the extended set")

	_, err = execute(t, "recommend", "--sex", "male", "--yes", "longTermm")
	assert.Error(t, err, "ids are checked before the male shortcut")

	_, err = execute(t, "recommend")
	assert.Error(t, err)

	_, err = execute(t, "recommend", "--sex", "female", "--rule-set", "weekly")
	assert.ErrorIs(t, err, recommend.ErrUnknownRuleSet)
}

func TestMethodsAndQuestions(t *testing.T) {
	out, err := execute(t, "methods")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, catalog.CopperIUD)

	out, err = execute(t, "methods", "--json")
	require.NoError(t, err)
	var methods []catalog.Method
	require.NoError(t, json.Unmarshal([]byte(out), &methods))
	assert.Len(t, methods, 10)

	out, err = execute(t, "questions", "--rule-set", "extended")
	require.NoError(t, err)
	assert.Contains(t, out, "wantPregnant")
	assert.Contains(t, out, "stiProtection")
}

func TestRuleSetDefaultFromEnvironment(t *testing.T) {
	t.Setenv("QUIZ_DEFAULT_RULE_SET", recommend.RuleSetExtended)
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"questions"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "stiProtection")

	assert.Equal(t, recommend.RuleSetClassic, loadCLIEnvWith(t, "").RuleSet)
}

func loadCLIEnvWith(t *testing.T, ruleSet string) cliEnv {
	t.Helper()
	t.Setenv("QUIZ_DEFAULT_RULE_SET", ruleSet)
	return loadCLIEnv()
}
