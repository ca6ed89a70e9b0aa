package configutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testUni struct {
	Fullname string `json:"fullname"`
	Interval int    `json:"scrapeinterval"`
}

type testConfig struct {
	Port         int                `json:"port"`
	Universities map[string]testUni `json:"universities"`
}

func (c *testConfig) Validate() error {
	for _, u := range c.Universities {
		if u.Interval < 0 {
			return errors.New("negative interval")
		}
	}
	return nil
}

func writeFile(t *testing.T, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0666)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
		// comments are allowed
		port: 8000,
		universities: {
			ULeth: { fullname: "University of Lethbridge", scrapeinterval: 600 },
		},
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ port: 9000 }`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, 9000, config.Port)
	require.Equal(t, "University of Lethbridge", config.Universities["ULeth"].Fullname)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.True(t, os.IsNotExist(err))
}

func TestReadConfigValidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
		universities: { ULeth: { scrapeinterval: -1 } },
	}`)

	_, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.ErrorContains(t, err, "negative interval")
}
