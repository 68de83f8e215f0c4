package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/desertthunder/spotydw/internal/models"
	"github.com/desertthunder/spotydw/internal/shared"
	th "github.com/desertthunder/spotydw/internal/testing"
)

const trackFixture = `{
  "name": "One More Time",
  "duration_ms": 320000,
  "track_number": 1,
  "artists": [{"name": "Daft Punk"}],
  "album": {
    "name": "Discovery",
    "release_date": "2001-03-12",
    "total_tracks": 14,
    "artists": [{"name": "Daft Punk"}],
    "images": []
  }
}`

const searchFixture = `{"contents": {"twoColumnSearchResultsRenderer": {"primaryContents": {"sectionListRenderer": {"contents": [
  {"itemSectionRenderer": {"contents": [
    {"videoRenderer": {"videoId": "short", "title": {"runs": [{"text": "One More Time (Radio Edit)"}]}, "lengthText": {"simpleText": "3:55"}}},
    {"videoRenderer": {"videoId": "album", "title": {"runs": [{"text": "One More Time"}]}, "lengthText": {"simpleText": "5:21"}}}
  ]}}
]}}}}}`

func noEnv(string) (string, bool) { return "", false }

// testServer serves the Spotify token and API endpoints and the YouTube search endpoint.
func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "test-token", "token_type": "bearer", "expires_in": 3600}`))
	})
	mux.HandleFunc("/v1/tracks/", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/v1/tracks/4uLU6hMCjMI75M1A2tKUQC" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(trackFixture))
	})
	mux.HandleFunc("/youtubei/v1/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchFixture))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

type harness struct {
	runner     *Runner
	output     *bytes.Buffer
	configPath string
	dir        string
}

// newHarness builds a runner pointed at server, with its config, database and output under a temp dir.
func newHarness(t *testing.T, server *httptest.Server) *harness {
	t.Helper()
	dir := t.TempDir()

	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(dir, "history.db")
	config.Download.OutputDir = filepath.Join(dir, "music")
	config.Download.SearchRate = 0

	opts := RunnerOpts{
		Config:     config,
		LogOutput:  io.Discard,
		Output:     &bytes.Buffer{},
		LookupEnv:  noEnv,
		Downloader: &th.FakeDownloader{},
		Tagger:     &th.FakeTagger{},
	}
	if server != nil {
		opts.HTTPClient = server.Client()
		opts.Endpoints = Endpoints{
			SpotifyAPI:   server.URL + "/v1",
			SpotifyToken: server.URL + "/token",
			SoundCloud:   server.URL,
			YouTube:      server.URL,
		}
	}

	return &harness{
		runner:     NewRunner(opts),
		output:     opts.Output.(*bytes.Buffer),
		configPath: filepath.Join(dir, "config.toml"),
		dir:        dir,
	}
}

func (h *harness) run(args ...string) error {
	argv := append([]string{shared.AppName, "--config", h.configPath}, args...)
	return h.runner.app().Run(context.Background(), argv)
}

func (h *harness) saveCredentials(t *testing.T) {
	t.Helper()
	config := *h.runner.config
	config.Credentials.Spotify = shared.SpotifyConfig{ClientID: "id", ClientSecret: "secret"}
	if err := shared.SaveConfig(h.configPath, &config); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(io.Discard)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			downloader := &th.FakeDownloader{}
			tagger := &th.FakeTagger{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Downloader: downloader,
				Tagger:     tagger,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger || !runner.fixedLog {
				t.Error("expected logger to be set and kept")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.downloader != downloader || runner.tagger != tagger {
				t.Error("expected pipeline overrides to be set")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil || runner.fixedLog {
				t.Error("expected a replaceable default logger")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to stdout")
			}
			if runner.httpClient == nil || runner.httpClient.Timeout == 0 {
				t.Error("expected an http client with a timeout")
			}
			if runner.lookupEnv == nil {
				t.Error("expected env lookup to default to os.LookupEnv")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		var names []string
		for _, c := range runner.register() {
			names = append(names, c.Name)
		}

		want := "setup config download search history inspect"
		if got := strings.Join(names, " "); got != want {
			t.Errorf("commands = %q, want %q", got, want)
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("compact", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]int{"a": 1}, false); err != nil {
				t.Fatalf("writeJSON: %v", err)
			}
			if got := output.String(); got != "{\"a\":1}\n" {
				t.Errorf("output = %q", got)
			}
		})

		t.Run("pretty", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]int{"a": 1}, true); err != nil {
				t.Fatalf("writeJSON: %v", err)
			}
			if got := output.String(); got != "{\n  \"a\": 1\n}\n" {
				t.Errorf("output = %q", got)
			}
		})

		t.Run("write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &th.FWriter{}})
			if err := runner.writeJSON("x", false); err == nil {
				t.Error("expected write error")
			}
		})
	})

	t.Run("load", func(t *testing.T) {
		t.Run("missing file keeps defaults and applies env", func(t *testing.T) {
			h := newHarness(t, nil)
			h.runner.lookupEnv = func(key string) (string, bool) {
				if key == "SOUNDCLOUD_OAUTH_TOKEN" {
					return "from-env", true
				}
				return "", false
			}

			if err := h.run("history"); err != nil {
				t.Fatalf("history: %v", err)
			}
			if got := h.runner.config.Credentials.SoundCloud.OAuthToken; got != "from-env" {
				t.Errorf("token = %q, want from-env", got)
			}
			if h.runner.configPath != h.configPath {
				t.Errorf("configPath = %q, want %q", h.runner.configPath, h.configPath)
			}
		})

		t.Run("invalid file is an error", func(t *testing.T) {
			h := newHarness(t, nil)
			if err := os.WriteFile(h.configPath, []byte("[download\n"), 0o600); err != nil {
				t.Fatal(err)
			}

			err := h.run("history")
			if !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})
}

func TestSetupCommand(t *testing.T) {
	h := newHarness(t, nil)

	if err := h.run("setup"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	th.AssertFileExists(t, h.configPath)
	th.AssertFileExists(t, h.runner.config.Database.Path)
	if !strings.Contains(h.output.String(), h.configPath) {
		t.Errorf("expected output to name the config file, got %q", h.output.String())
	}

	t.Run("keeps an existing config", func(t *testing.T) {
		h := newHarness(t, nil)
		if err := shared.SaveConfig(h.configPath, h.runner.config); err != nil {
			t.Fatal(err)
		}

		before := th.MustReadFile(t, h.configPath)
		if err := h.run("setup"); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if after := th.MustReadFile(t, h.configPath); after != before {
			t.Error("expected config file to be left untouched")
		}
	})
}

func TestConfigCommand(t *testing.T) {
	t.Run("saves credentials", func(t *testing.T) {
		h := newHarness(t, nil)

		if err := h.run("config", "--soundcloud-token", "sc-token", "my-id", "my-secret"); err != nil {
			t.Fatalf("config: %v", err)
		}

		saved, err := shared.LoadConfig(h.configPath)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if saved.Credentials.Spotify.ClientID != "my-id" || saved.Credentials.Spotify.ClientSecret != "my-secret" {
			t.Errorf("spotify credentials = %+v", saved.Credentials.Spotify)
		}
		if saved.Credentials.SoundCloud.OAuthToken != "sc-token" {
			t.Errorf("soundcloud token = %q", saved.Credentials.SoundCloud.OAuthToken)
		}
	})

	t.Run("extracts token from curl file", func(t *testing.T) {
		h := newHarness(t, nil)
		curlPath := filepath.Join(h.dir, "request.txt")
		curl := `curl 'https://api-v2.soundcloud.com/me' -H 'Authorization: OAuth 2-123456-abc' -H 'Accept: application/json'`
		if err := os.WriteFile(curlPath, []byte(curl), 0o600); err != nil {
			t.Fatal(err)
		}

		if err := h.run("config", "--curl-file", curlPath, "id", "secret"); err != nil {
			t.Fatalf("config: %v", err)
		}

		saved, err := shared.LoadConfig(h.configPath)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if got := saved.Credentials.SoundCloud.OAuthToken; got != "2-123456-abc" {
			t.Errorf("token = %q, want 2-123456-abc", got)
		}
	})

	t.Run("keeps existing settings", func(t *testing.T) {
		h := newHarness(t, nil)
		existing := shared.DefaultConfig()
		existing.Download.Workers = 7
		existing.Credentials.SoundCloud.OAuthToken = "keep-me"
		if err := shared.SaveConfig(h.configPath, existing); err != nil {
			t.Fatal(err)
		}

		if err := h.run("config", "id", "secret"); err != nil {
			t.Fatalf("config: %v", err)
		}

		saved, err := shared.LoadConfig(h.configPath)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if saved.Download.Workers != 7 || saved.Credentials.SoundCloud.OAuthToken != "keep-me" {
			t.Errorf("expected unrelated settings to survive, got workers=%d token=%q",
				saved.Download.Workers, saved.Credentials.SoundCloud.OAuthToken)
		}
	})

	t.Run("argument errors", func(t *testing.T) {
		tc := []struct {
			name string
			args []string
			want error
		}{
			{name: "missing secret", args: []string{"config", "id"}, want: shared.ErrMissingArgument},
			{name: "token and curl file", args: []string{"config", "--soundcloud-token", "t", "--curl-file", "f", "id", "secret"}, want: shared.ErrInvalidArgument},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				h := newHarness(t, nil)
				if err := h.run(tt.args...); !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
				th.AssertFileMissing(t, h.configPath)
			})
		}
	})
}

func TestDownloadCommand(t *testing.T) {
	const trackURL = "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC"

	t.Run("single track end to end", func(t *testing.T) {
		server := testServer(t)
		h := newHarness(t, server)
		h.saveCredentials(t)

		if err := h.run("download", trackURL); err != nil {
			t.Fatalf("download: %v", err)
		}

		out := filepath.Join(h.dir, "music", "One More Time.mp3")
		th.AssertFileExists(t, out)
		th.AssertFileMissing(t, filepath.Join(h.dir, "music", "album.mp3"))

		downloaded := h.runner.downloader.(*th.FakeDownloader).Downloaded
		if len(downloaded) != 1 || downloaded[0] != "album" {
			t.Errorf("expected the closest-duration candidate to be downloaded, got %v", downloaded)
		}

		got := h.output.String()
		if !strings.Contains(got, "1 succeeded, 0 failed") {
			t.Errorf("expected summary line, got %q", got)
		}

		th.AssertFileExists(t, filepath.Join(h.dir, shared.TokenFileName))
	})

	t.Run("prints stage progress per track", func(t *testing.T) {
		server := testServer(t)
		h := newHarness(t, server)
		h.saveCredentials(t)

		if err := h.run("download", trackURL); err != nil {
			t.Fatalf("download: %v", err)
		}

		got := h.output.String()
		for _, want := range []string{
			"Found track: One More Time (1 tracks)",
			"[1/1] searching: One More Time - Daft Punk",
			"[1/1] matching: One More Time - Daft Punk",
			"[1/1] acquiring: One More Time - Daft Punk",
			"[1/1] tagging: One More Time - Daft Punk",
			"[1/1] ✓ One More Time - Daft Punk",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("expected output to contain %q, got %q", want, got)
			}
		}
		if strings.Index(got, "acquiring") > strings.Index(got, "1 succeeded") {
			t.Errorf("expected stage lines before the summary, got %q", got)
		}
	})

	t.Run("json manifest and csv report", func(t *testing.T) {
		server := testServer(t)
		h := newHarness(t, server)
		h.saveCredentials(t)
		report := filepath.Join(h.dir, "report.csv")

		if err := h.run("download", "--json", "--report", report, trackURL); err != nil {
			t.Fatalf("download: %v", err)
		}

		var manifest struct {
			BatchID   string `json:"batch_id"`
			Kind      string `json:"kind"`
			Succeeded int    `json:"succeeded"`
			Results   []struct {
				State      string `json:"state"`
				OutputPath string `json:"output_path"`
			} `json:"results"`
		}
		if err := json.Unmarshal(h.output.Bytes(), &manifest); err != nil {
			t.Fatalf("expected JSON manifest, got %q: %v", h.output.String(), err)
		}
		if manifest.Succeeded != 1 || manifest.BatchID == "" || manifest.Kind != "track" {
			t.Errorf("unexpected manifest %+v", manifest)
		}
		if len(manifest.Results) != 1 || manifest.Results[0].State != "done" {
			t.Errorf("unexpected results %+v", manifest.Results)
		}

		csv := th.MustReadFile(t, report)
		if !strings.HasPrefix(csv, "Index,Title,Artists,Album,Duration,State,Output,Error\n") {
			t.Errorf("unexpected report header: %q", csv)
		}
		if !strings.Contains(csv, "One More Time") {
			t.Errorf("expected report row for the track, got %q", csv)
		}
	})

	t.Run("records history", func(t *testing.T) {
		server := testServer(t)
		h := newHarness(t, server)
		h.saveCredentials(t)

		if err := h.run("download", trackURL); err != nil {
			t.Fatalf("download: %v", err)
		}
		h.output.Reset()

		if err := h.run("history", "--json"); err != nil {
			t.Fatalf("history: %v", err)
		}

		var batches []models.Batch
		if err := json.Unmarshal(h.output.Bytes(), &batches); err != nil {
			t.Fatalf("history json: %v (%q)", err, h.output.String())
		}
		if len(batches) != 1 {
			t.Fatalf("expected one batch, got %d", len(batches))
		}
		b := batches[0]
		if b.SourceURL != trackURL || b.Total != 1 || b.Succeeded != 1 || b.FinishedAt == nil {
			t.Errorf("unexpected batch %+v", b)
		}

		h.output.Reset()
		if err := h.run("history", "--batch", b.ID); err != nil {
			t.Fatalf("history --batch: %v", err)
		}
		if got := h.output.String(); !strings.Contains(got, "One More Time") || !strings.Contains(got, "done") {
			t.Errorf("expected the batch's download row, got %q", got)
		}
	})

	t.Run("tagging failure keeps the run going", func(t *testing.T) {
		server := testServer(t)
		h := newHarness(t, server)
		h.saveCredentials(t)
		h.runner.tagger = &th.FakeTagger{Err: shared.ErrTaggingFailed}

		if err := h.run("download", trackURL); err != nil {
			t.Fatalf("download: %v", err)
		}
		if got := h.output.String(); !strings.Contains(got, "0 succeeded, 1 failed") {
			t.Errorf("expected failed summary, got %q", got)
		}
		th.AssertFileExists(t, filepath.Join(h.dir, "music", "album.mp3"))
	})

	t.Run("errors", func(t *testing.T) {
		tc := []struct {
			name        string
			args        []string
			credentials bool
			want        error
		}{
			{name: "missing url", args: []string{"download"}, want: shared.ErrMissingArgument},
			{name: "unsupported host", args: []string{"download", "https://example.com/track/1"}, want: shared.ErrUnsupportedHost},
			{name: "unsupported kind", args: []string{"download", "https://open.spotify.com/artist/1"}, want: shared.ErrUnsupportedKind},
			{name: "no credentials", args: []string{"download", trackURL}, want: shared.ErrMissingCredentials},
			{name: "unknown tagger", args: []string{"download", "--tagger", "lame", trackURL}, credentials: true, want: shared.ErrInvalidConfig},
			{name: "id3 needs mp3", args: []string{"download", "--tagger", "id3", "--format", "opus", trackURL}, credentials: true, want: shared.ErrInvalidConfig},
			{name: "unknown track", args: []string{"download", "https://open.spotify.com/track/missing"}, credentials: true, want: shared.ErrResolution},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				server := testServer(t)
				h := newHarness(t, server)
				if tt.credentials {
					h.saveCredentials(t)
				}

				if err := h.run(tt.args...); !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
				if n := len(h.runner.downloader.(*th.FakeDownloader).Downloaded); n != 0 {
					t.Errorf("expected no downloads, got %d", n)
				}
			})
		}
	})

	t.Run("missing tools", func(t *testing.T) {
		h := newHarness(t, nil)
		h.runner.downloader = nil
		h.runner.config.Tools.YtDlp = filepath.Join(h.dir, "no-such-yt-dlp")

		err := h.run("download", "https://open.spotify.com/track/abc")
		if !errors.Is(err, shared.ErrToolNotFound) {
			t.Errorf("expected ErrToolNotFound, got %v", err)
		}
	})
}

func TestDownloadSettings(t *testing.T) {
	const trackURL = "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC"

	t.Run("flag overrides an invalid config value", func(t *testing.T) {
		h := newHarness(t, testServer(t))
		h.runner.config.Download.Workers = -1
		h.saveCredentials(t)

		if err := h.run("download", "--workers", "2", "--output", filepath.Join(h.dir, "elsewhere"), trackURL); err != nil {
			t.Fatalf("download: %v", err)
		}
		th.AssertFileExists(t, filepath.Join(h.dir, "elsewhere", "One More Time.mp3"))
	})

	t.Run("flag value is validated", func(t *testing.T) {
		h := newHarness(t, nil)
		h.runner.config.Download.Workers = 2

		err := h.run("download", "--workers", "-1", "https://open.spotify.com/track/abc")
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestSearchCommand(t *testing.T) {
	t.Run("table with best match", func(t *testing.T) {
		h := newHarness(t, testServer(t))

		if err := h.run("search", "--duration", "320000", "One More Time - Daft Punk"); err != nil {
			t.Fatalf("search: %v", err)
		}

		got := h.output.String()
		for _, want := range []string{"One More Time (Radio Edit)", "3:55", "https://www.youtube.com/watch?v=album", "Best match for 5:20"} {
			if !strings.Contains(got, want) {
				t.Errorf("expected output to contain %q, got %q", want, got)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		h := newHarness(t, testServer(t))

		if err := h.run("search", "--json", "anything"); err != nil {
			t.Fatalf("search: %v", err)
		}

		var candidates []models.Candidate
		if err := json.Unmarshal(h.output.Bytes(), &candidates); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(candidates) != 2 || candidates[0].ID != "short" || candidates[1].DurationMS != 321_000 {
			t.Errorf("unexpected candidates %+v", candidates)
		}
	})

	t.Run("missing query", func(t *testing.T) {
		h := newHarness(t, nil)
		if err := h.run("search"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestHistoryCommand(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		h := newHarness(t, nil)
		if err := h.run("history"); err != nil {
			t.Fatalf("history: %v", err)
		}
		if got := h.output.String(); got != "No downloads recorded yet\n" {
			t.Errorf("output = %q", got)
		}
	})

	t.Run("unknown batch", func(t *testing.T) {
		h := newHarness(t, nil)
		if err := h.run("history", "--batch", "nope"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("invalid limit", func(t *testing.T) {
		h := newHarness(t, nil)
		if err := h.run("history", "--limit", "0"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestInspectCommand(t *testing.T) {
	h := newHarness(t, nil)
	path := filepath.Join(h.dir, "song.mp3")
	if err := os.WriteFile(path, th.MinimalMP3, 0o644); err != nil {
		t.Fatal(err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle("Digital Love")
	tag.SetArtist("Daft Punk")
	tag.SetAlbum("Discovery")
	if err := tag.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	tag.Close()

	t.Run("json", func(t *testing.T) {
		h.output.Reset()
		if err := h.run("inspect", "--json", path); err != nil {
			t.Fatalf("inspect: %v", err)
		}

		var got map[string]any
		if err := json.Unmarshal(h.output.Bytes(), &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["title"] != "Digital Love" || got["artist"] != "Daft Punk" || got["has_cover"] != false {
			t.Errorf("unexpected tags %v", got)
		}
	})

	t.Run("table", func(t *testing.T) {
		h.output.Reset()
		if err := h.run("inspect", path); err != nil {
			t.Fatalf("inspect: %v", err)
		}
		if got := h.output.String(); !strings.Contains(got, "Discovery") || !strings.Contains(got, "Album Artist") {
			t.Errorf("unexpected table %q", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if err := h.run("inspect", filepath.Join(h.dir, "nope.mp3")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
