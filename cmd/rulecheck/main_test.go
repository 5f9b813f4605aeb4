package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhn78/framework/pkg/config"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "development")
	t.Setenv("VALIDATION_STRICT", "true")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "text")
	config.ResetCache()
	t.Cleanup(config.ResetCache)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := newRootCmd(out, errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestValidateCommand(t *testing.T) {
	setupEnv(t)

	out, logs, err := execute(t, "validate", "--schema", "testdata/user.yaml", "testdata/users.yaml")
	require.ErrorIs(t, err, errRecordsInvalid)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Equal(t, "record 2: email: E-mail does not have a valid e-mail format\n"+
		"record 2: nickname: The length of Nickname has to be greater than or equal to 3\n"+
		"record 2: banned_at: Ban date is necessary in state banned\n", out)
	assert.Contains(t, logs, "validation finished")
	assert.Contains(t, logs, "failed=1")
}

func TestValidateCommand_Lenient(t *testing.T) {
	setupEnv(t)

	out, _, err := execute(t, "validate", "--schema", "testdata/user.yaml", "--strict=false", "testdata/users.yaml")
	require.Error(t, err)
	assert.NotContains(t, out, "e-mail format")
	assert.Contains(t, out, "record 2: nickname:")
}

func TestValidateCommand_SkippedRecords(t *testing.T) {
	setupEnv(t)

	out, logs, err := execute(t, "validate", "--schema", "testdata/user.yaml", "testdata/mixed.yaml")
	require.ErrorIs(t, err, errRecordsInvalid)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out, "record 1: record is incompatible with schema")
	assert.NotContains(t, out, "record 2:")

	assert.Contains(t, logs, "record skipped")
	assert.Contains(t, logs, "record.index=1")
	assert.Contains(t, logs, "record.state=active")
	assert.Contains(t, logs, "skipped=1")
	assert.Contains(t, logs, "errors.0=")
}

func TestValidateCommand_StrictFromEnvironment(t *testing.T) {
	setupEnv(t)
	t.Setenv("VALIDATION_STRICT", "false")

	out, _, err := execute(t, "validate", "--schema", "testdata/user.yaml", "testdata/users.yaml")
	require.Error(t, err)
	assert.NotContains(t, out, "e-mail format")
}

func TestValidateCommand_SingleRecord(t *testing.T) {
	setupEnv(t)

	out, _, err := execute(t, "validate", "--schema", "testdata/user.yaml", "testdata/valid.yaml")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestValidateCommand_Messages(t *testing.T) {
	setupEnv(t)

	out, _, err := execute(t, "validate", "-s", "testdata/user.yaml", "--lang", "es", "testdata/users.yaml")
	require.Error(t, err)
	assert.Contains(t, out, "record 2: email: E-mail no tiene un formato de e-mail válido\n")
	assert.Contains(t, out, "record 2: banned_at: Ban date es necesario en el estado banned\n")

	out, _, err = execute(t, "validate", "-s", "testdata/user.yaml", "--lang", "es", "--messages", "testdata/es.yaml", "testdata/users.yaml")
	require.Error(t, err)
	assert.Contains(t, out, "record 2: nickname: Nickname es demasiado corto\n")
	assert.Contains(t, out, "record 2: email: E-mail no tiene un formato de e-mail válido\n",
		"keys missing from the extra catalog keep the built-in translation")
}

func TestValidateCommand_JSON(t *testing.T) {
	setupEnv(t)

	out, _, err := execute(t, "validate", "-s", "testdata/user.yaml", "-o", "json", "testdata/users.yaml")
	require.Error(t, err)

	var results []recordResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.True(t, results[0].Valid)
	assert.False(t, results[1].Valid)
	require.Len(t, results[1].Errors, 3)
	assert.Equal(t, "validation.format", results[1].Errors[0].TranslationKey)
}

func TestValidateCommand_Errors(t *testing.T) {
	setupEnv(t)

	_, _, err := execute(t, "validate", "testdata/users.yaml")
	assert.Error(t, err, "schema flag is required")

	_, _, err = execute(t, "validate", "-s", "testdata/missing.yaml", "testdata/users.yaml")
	assert.Error(t, err)

	_, _, err = execute(t, "validate", "-s", "testdata/user.yaml", "testdata/missing.yaml")
	assert.Error(t, err)

	_, _, err = execute(t, "validate", "-s", "testdata/user.yaml", "-o", "xml", "testdata/users.yaml")
	assert.ErrorContains(t, err, "unknown output format")

	_, _, err = execute(t, "--log-level", "loud", "validate", "-s", "testdata/user.yaml", "testdata/users.yaml")
	assert.ErrorIs(t, err, config.ErrInvalidSettings)
}

func TestDescribeCommand(t *testing.T) {
	setupEnv(t)

	out, _, err := execute(t, "describe", "--schema", "testdata/user.yaml")
	require.NoError(t, err)
	assert.Equal(t, `user
  E-mail (email)
    - mandatory
    - with a valid e-mail format
  Nickname (nickname)
    - at least 3 characters
  Ban date (banned_at)
    states: active=forbidden, banned=required
`, out)
}

func TestRulesCommand(t *testing.T) {
	setupEnv(t)

	out, _, err := execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "number_between\n")
	assert.Contains(t, out, "string_case\n")
}

func TestReadRecords(t *testing.T) {
	records, err := readRecords("testdata/users.yaml")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ann", records[0]["nickname"])

	_, err = readRecords("testdata/es.yaml")
	require.NoError(t, err, "a single mapping is one record")

	_, err = readRecords("testdata/missing.yaml")
	assert.Error(t, err)
}
