package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Config{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		yamlTag := field.Tag.Get("yaml")
		assert.NotEmpty(t, yamlTag)
		yamlField := strings.Split(yamlTag, ",")[0]
		knownFields[yamlField] = true

		if _, ok := rawConfig[yamlField]; !ok {
			assert.False(t, true, "default config missing field: %q", yamlField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefault(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "/home/tester", cfg.HomeDir)
	assert.Equal(t, filepath.Join("/home/tester", ".myshell_history"), cfg.HistoryFile)
	assert.Equal(t, 16, cfg.MaxJobs)
	assert.Equal(t, "MY_PROMPT", cfg.PromptEnv)
	assert.Equal(t, "shell$ ", cfg.DefaultPrompt)
	assert.Equal(t, ColorAuto, cfg.Color)
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/jobshell.yml", []byte(`
home_dir: /srv
max_jobs: 2
color: never
`), 0644))

	cfg, err := Load(fs, "/etc/jobshell.yml")
	require.NoError(t, err)

	assert.Equal(t, "/srv", cfg.HomeDir)
	assert.Equal(t, "/srv/.myshell_history", cfg.HistoryFile)
	assert.Equal(t, 2, cfg.MaxJobs)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, 1000, cfg.MaxHistory)
	assert.Same(t, fs, cfg.Fs())
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"unknown field":  "shell: /bin/sh\n",
		"zero capacity":  "max_jobs: 0\n",
		"bad color":      "color: sometimes\n",
		"no prompt key":  "prompt_env: \"\"\n",
		"empty plugin":   "plugins: [\"\"]\n",
		"malformed yaml": "max_jobs: [\n",
	}

	for tn, contents := range cases {
		t.Run(tn, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "config.yml", []byte("home_dir: /srv\n"+contents), 0644))

			_, err := Load(fs, "config.yml")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "nope.yml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenLog(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config.yml", []byte("home_dir: /srv\nlog_file: /var/log/jobshell.log\n"), 0644))
	cfg, err := Load(fs, "config.yml")
	require.NoError(t, err)

	for _, line := range []string{"one\n", "two\n"} {
		f, err := cfg.OpenLog()
		require.NoError(t, err)
		_, err = f.WriteString(line)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}

	contents, err := afero.ReadFile(fs, "/var/log/jobshell.log")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(contents))

	cfg.LogFile = ""
	f, err := cfg.OpenLog()
	assert.NoError(t, err)
	assert.Nil(t, f)
}
