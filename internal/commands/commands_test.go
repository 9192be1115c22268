package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postguard-dev/postguard/internal/auditlog"
	"github.com/postguard-dev/postguard/internal/config"
	"github.com/postguard-dev/postguard/internal/journal"
	"github.com/postguard-dev/postguard/internal/model"
	"github.com/postguard-dev/postguard/internal/posting"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func writePostings(t *testing.T, dir string, entries []model.Entry) string {
	t.Helper()
	path := filepath.Join(dir, "postings.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, journal.WriteEntries(f, entries))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestEngineFromConfig_Defaults(t *testing.T) {
	engine := EngineFromConfig(config.Default())

	// Default rules plus the revenue cycle set.
	assert.Equal(t, 6, engine.Rules().Len())
	_, ok := engine.Rules().Get(posting.RuleCrossBorder)
	assert.True(t, ok)
}

func TestEngineFromConfig_DisabledRules(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.RevenueCycle = false
	cfg.Rules.Disabled = []string{posting.RuleAssetDebitBalance}

	engine := EngineFromConfig(cfg)

	assert.Equal(t, 2, engine.Rules().Len())
	rule, ok := engine.Rules().Get(posting.RuleAssetDebitBalance)
	require.True(t, ok)
	assert.False(t, rule.Active)
}

func TestValidateCommand_Valid(t *testing.T) {
	dir := t.TempDir()
	path := writePostings(t, dir, []model.Entry{
		{AccountCode: "1100", AccountType: model.AccountTypeAsset, Amount: dec("100.00"), Currency: "USD"},
		{AccountCode: "4000", AccountType: model.AccountTypeRevenue, Amount: dec("100.00"), Currency: "USD"},
	})

	out, err := runCommand(t, "validate", path, "--config", filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "VALID")
	assert.Contains(t, out, "debits 100.00")
	assert.Contains(t, out, "credits 100.00")
}

func TestValidateCommand_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := writePostings(t, dir, []model.Entry{
		{AccountCode: "1100", AccountType: model.AccountTypeAsset, Amount: dec("100.00"), Currency: "USD"},
		{AccountCode: "4000", AccountType: model.AccountTypeRevenue, Amount: dec("150.00"), Currency: "USD"},
	})

	out, err := runCommand(t, "validate", path, "--config", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, out, "INVALID")
	assert.Contains(t, out, "do not balance")
}

func TestValidateCommand_AppendsAuditLog(t *testing.T) {
	dir := t.TempDir()
	path := writePostings(t, dir, []model.Entry{
		{AccountCode: "1100", AccountType: model.AccountTypeAsset, Amount: dec("100.00"), Currency: "USD"},
		{AccountCode: "4000", AccountType: model.AccountTypeRevenue, Amount: dec("100.00"), Currency: "USD"},
	})

	_, err := runCommand(t, "validate", path,
		"--config", filepath.Join(dir, "missing.yaml"),
		"--log", dir)
	require.NoError(t, err)

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, path, entries[0].Source)
	assert.Equal(t, 2, entries[0].EntryCount)
	assert.True(t, entries[0].Valid)
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, err := runCommand(t, "validate", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "books")

	out, err := runCommand(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized")

	cfg, err := config.Load(filepath.Join(dir, "postguard.yaml"))
	require.NoError(t, err)
	assert.InDelta(t, 0.01, cfg.Tolerances.Balance, 1e-9)

	_, err = os.Stat(filepath.Join(dir, "accounts", "chart-of-accounts.csv"))
	require.NoError(t, err)
}

func TestRulesCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, "rules", "--config", filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, posting.RulePaymentFulfillment)
	assert.Contains(t, out, posting.RuleCrossBorder)
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "warning")
}
