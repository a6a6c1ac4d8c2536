package formatter

import (
	"strings"
	"testing"

	"github.com/desertthunder/playlift/internal/models"
	"github.com/desertthunder/playlift/internal/tasks"
	th "github.com/desertthunder/playlift/internal/testing"
)

func sampleExport() *models.PlaylistExport {
	return &models.PlaylistExport{
		Playlist: models.Playlist{
			ID:          "test123",
			Name:        "Test Playlist",
			Description: "A test playlist",
			TrackCount:  3,
			Public:      true,
		},
		Entries: []models.PlaylistEntry{
			{
				Track: models.Track{
					ID:       "track1",
					Title:    "Song One",
					Artists:  []string{"Artist One"},
					Album:    "Album One",
					Duration: 180000,
					ISRC:     "USRC12345678",
				},
				Present: true,
			},
			{Present: false},
			{
				Track: models.Track{
					ID:       "track2",
					Title:    "Song Two",
					Artists:  []string{"Artist Two", "Artist Three"},
					Duration: 240000,
					ISRC:     "USRC87654321",
				},
				Present: true,
			},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Title,Artists,Album,Duration,ISRC") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "track1") {
			t.Errorf("CSV missing track1 ID")
		}
		if !strings.Contains(output, "Song One") {
			t.Errorf("CSV missing track1 title")
		}
		if !strings.Contains(output, `"Artist Two, Artist Three"`) {
			t.Errorf("CSV should quote the joined artist line, got: %s", output)
		}
		if !strings.Contains(output, "USRC12345678") {
			t.Errorf("CSV missing track1 ISRC")
		}

		lines := strings.Split(strings.TrimSpace(output), "\n")
		if len(lines) != 3 {
			t.Errorf("expected header + 2 present tracks, got %d lines (absent slot must be skipped)", len(lines))
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		t.Run("without cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(sampleExport(), "")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			output := string(data)

			if !strings.Contains(output, "# Test Playlist") {
				t.Errorf("Markdown missing title")
			}
			if !strings.Contains(output, "**Description**: A test playlist") {
				t.Errorf("Markdown missing description")
			}
			if !strings.Contains(output, "**Tracks**: 2") {
				t.Errorf("Markdown should count present tracks only, got: %s", output)
			}
			if !strings.Contains(output, "**Visibility**: Public") {
				t.Errorf("Markdown missing visibility")
			}
			if !strings.Contains(output, "## Tracks") {
				t.Errorf("Markdown missing tracks section")
			}
			if !strings.Contains(output, "1. Artist One - Song One (Album One) [3:00]") {
				t.Errorf("Markdown missing track1, got: %s", output)
			}
			if !strings.Contains(output, "2. Artist Two, Artist Three - Song Two [4:00]") {
				t.Errorf("Markdown missing track2 (no album)")
			}
		})

		t.Run("with cover image", func(t *testing.T) {
			data, err := ExportToMarkdown(sampleExport(), "test_cover.jpg")
			if err != nil {
				t.Fatalf("ExportToMarkdown failed: %v", err)
			}

			if !strings.Contains(string(data), "![Cover](test_cover.jpg)") {
				t.Errorf("Markdown missing cover image reference")
			}
		})
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Playlist: Test Playlist") {
			t.Errorf("Text missing playlist name")
		}
		if !strings.Contains(output, "Description: A test playlist") {
			t.Errorf("Text missing description")
		}
		if !strings.Contains(output, "Tracks: 2") {
			t.Errorf("Text should count present tracks only")
		}
		if !strings.Contains(output, "1. Artist One - Song One") {
			t.Errorf("Text missing track1")
		}
		if !strings.Contains(output, "2. Artist Two, Artist Three - Song Two") {
			t.Errorf("Text missing track2")
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(sampleExport())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, `"test123"`) {
			t.Errorf("JSON missing playlist ID")
		}
		if !strings.Contains(output, `"Song One"`) {
			t.Errorf("JSON missing track1 title")
		}
		if !strings.Contains(output, `"present": false`) {
			t.Errorf("JSON should carry absent slots, got: %s", output)
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		playlist := models.Playlist{
			ID:          "test123",
			Name:        "Test Playlist",
			Description: "A test playlist",
			TrackCount:  10,
			Public:      true,
		}

		data, err := ToMetadataJSON(playlist)
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, `"id": "test123"`) {
			t.Errorf("JSON missing id field, got: %s", output)
		}
		if !strings.Contains(output, `"name": "Test Playlist"`) {
			t.Errorf("JSON missing name field")
		}
	})
}

func TestRenderTransferReport(t *testing.T) {
	t.Run("with failed tracks", func(t *testing.T) {
		report := &tasks.TransferReport{
			PlaylistName:     "Road Trip",
			TotalTracks:      5,
			TransferredCount: 3,
			FailedTracks: []tasks.FailedTrack{
				{Name: "Song 3", Artists: []string{"Artist 3"}},
				{Name: "Song 5", Artists: []string{"Artist 5", "Guest"}},
			},
			PlaylistID: "yt_playlist_1",
		}

		output := RenderTransferReport(report)

		for _, want := range []string{
			"Transfer complete: Road Trip",
			"Total tracks:   5",
			"Transferred:    3",
			"Failed:         2",
			"yt_playlist_1",
			"Not found on the destination:",
			"Song 3",
			"Artist 5, Guest",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("report output missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("clean transfer has no failure table", func(t *testing.T) {
		report := &tasks.TransferReport{
			PlaylistName:     "Road Trip",
			TotalTracks:      3,
			TransferredCount: 3,
			FailedTracks:     []tasks.FailedTrack{},
			PlaylistID:       "yt_playlist_1",
		}

		output := RenderTransferReport(report)
		if strings.Contains(output, "Not found") {
			t.Errorf("clean report should not render a failure table:\n%s", output)
		}
	})
}

func TestRenderTrackTable(t *testing.T) {
	tracks := []models.Track{
		{ID: "v1", Title: "One More Time", Artists: []string{"Daft Punk"}, Album: "Discovery", Duration: 320000},
		{ID: "v2", Title: "Aerodynamic", Artists: []string{"Daft Punk"}, Album: "Discovery", Duration: 212000},
	}

	output := RenderTrackTable(tracks)

	for _, want := range []string{"One More Time", "Daft Punk", "Discovery", "5:20", "3:32"} {
		if !strings.Contains(output, want) {
			t.Errorf("track table missing %q, got:\n%s", want, output)
		}
	}
}

func TestRenderPlaylistTable(t *testing.T) {
	playlists := []models.Playlist{
		{ID: "sp1", Name: "Road Trip", TrackCount: 42, Public: true},
		{ID: "sp2", Name: "Focus", TrackCount: 7, Public: false},
	}

	output := RenderPlaylistTable(playlists)

	for _, want := range []string{"Road Trip", "42", "Public", "Focus", "Private"} {
		if !strings.Contains(output, want) {
			t.Errorf("playlist table missing %q, got:\n%s", want, output)
		}
	}
}

func TestFailedTracksCSV(t *testing.T) {
	report := &tasks.TransferReport{
		PlaylistName: "Road Trip",
		FailedTracks: []tasks.FailedTrack{
			{Name: "Song 3", Artists: []string{"Artist 3"}},
			{Name: "Song 5", Artists: []string{"Artist 5", "Guest"}},
		},
	}

	data, err := FailedTracksCSV(report)
	if err != nil {
		t.Fatalf("FailedTracksCSV failed: %v", err)
	}

	output := string(data)
	if !strings.Contains(output, "Title,Artists") {
		t.Errorf("CSV missing headers, got: %s", output)
	}
	if !strings.Contains(output, "Song 3,Artist 3") {
		t.Errorf("CSV missing first failed track")
	}
	if !strings.Contains(output, `"Artist 5, Guest"`) {
		t.Errorf("CSV should join multiple artists, got: %s", output)
	}
}

func TestDownloadImage(t *testing.T) {
	t.Run("EmptyURL", func(t *testing.T) {
		if _, err := DownloadImage(""); err == nil {
			t.Error("DownloadImage with empty URL should return error")
		}
	})
}

func TestWriters(t *testing.T) {
	chdirTemp := func(t *testing.T) {
		t.Helper()
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		t.Cleanup(func() { th.MustChdir(t, originalDir) })
	}

	t.Run("WriteCSVExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			chdirTemp(t)

			result, err := WriteCSVExport(sampleExport(), "")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.TracksFile != "test123_tracks.csv" {
				t.Errorf("Expected tracks file 'test123_tracks.csv', got '%s'", result.TracksFile)
			}
			if result.MetadataFile != "test123_metadata.json" {
				t.Errorf("Expected metadata file 'test123_metadata.json', got '%s'", result.MetadataFile)
			}

			th.AssertFileExists(t, result.TracksFile)
			th.AssertFileExists(t, result.MetadataFile)

			csvContent := th.MustReadFile(t, result.TracksFile)
			if !strings.Contains(csvContent, "ID,Title,Artists,Album,Duration,ISRC") {
				t.Errorf("CSV missing headers")
			}
			if !strings.Contains(csvContent, "track1") || !strings.Contains(csvContent, "Song One") {
				t.Errorf("CSV missing track data")
			}

			metadataContent := th.MustReadFile(t, result.MetadataFile)
			if !strings.Contains(metadataContent, "test123") || !strings.Contains(metadataContent, "Test Playlist") {
				t.Errorf("Metadata JSON missing expected fields")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			chdirTemp(t)

			result, err := WriteCSVExport(sampleExport(), "custom_export")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.TracksFile != "custom_export_tracks.csv" {
				t.Errorf("Expected 'custom_export_tracks.csv', got '%s'", result.TracksFile)
			}
			th.AssertFileExists(t, result.TracksFile)
			th.AssertFileExists(t, result.MetadataFile)
		})
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		t.Run("WithDefaultDirectory", func(t *testing.T) {
			chdirTemp(t)

			result, err := WriteMarkdownExport(sampleExport(), "", "")
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			if result.Directory != "test123" {
				t.Errorf("Expected directory 'test123', got '%s'", result.Directory)
			}
			th.AssertDirExists(t, result.Directory)

			readmePath := result.Directory + "/README.md"
			th.AssertFileExists(t, readmePath)

			content := th.MustReadFile(t, readmePath)
			if !strings.Contains(content, "# Test Playlist") {
				t.Errorf("Markdown missing title")
			}
			if !strings.Contains(content, "1. Artist One - Song One (Album One)") {
				t.Errorf("Markdown missing track listing")
			}

			if result.CoverImage != "" {
				t.Errorf("Expected no cover image, got '%s'", result.CoverImage)
			}
		})

		t.Run("WithCustomDirectory", func(t *testing.T) {
			chdirTemp(t)

			result, err := WriteMarkdownExport(sampleExport(), "custom_playlist", "")
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			if result.Directory != "custom_playlist" {
				t.Errorf("Expected directory 'custom_playlist', got '%s'", result.Directory)
			}
			th.AssertDirExists(t, result.Directory)
			th.AssertFileExists(t, result.Directory+"/README.md")
		})
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			chdirTemp(t)

			filepath, err := WriteTextExport(sampleExport(), "")
			if err != nil {
				t.Fatalf("WriteTextExport failed: %v", err)
			}

			if filepath != "test123_tracks.txt" {
				t.Errorf("Expected 'test123_tracks.txt', got '%s'", filepath)
			}
			th.AssertFileExists(t, filepath)

			content := th.MustReadFile(t, filepath)
			if !strings.Contains(content, "Playlist: Test Playlist") {
				t.Errorf("Text missing playlist name")
			}
			if !strings.Contains(content, "1. Artist One - Song One") {
				t.Errorf("Text missing track listing")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			chdirTemp(t)

			filepath, err := WriteTextExport(sampleExport(), "my_playlist.txt")
			if err != nil {
				t.Fatalf("WriteTextExport failed: %v", err)
			}

			if filepath != "my_playlist.txt" {
				t.Errorf("Expected 'my_playlist.txt', got '%s'", filepath)
			}
			th.AssertFileExists(t, filepath)
		})
	})

	t.Run("WriteJSONExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			chdirTemp(t)

			filepath, err := WriteJSONExport(sampleExport(), "")
			if err != nil {
				t.Fatalf("WriteJSONExport failed: %v", err)
			}

			if filepath != "test123.json" {
				t.Errorf("Expected 'test123.json', got '%s'", filepath)
			}
			th.AssertFileExists(t, filepath)

			content := th.MustReadFile(t, filepath)
			if !strings.Contains(content, `"test123"`) {
				t.Errorf("JSON missing playlist ID")
			}
			if !strings.Contains(content, `"Song One"`) {
				t.Errorf("JSON missing track data")
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			chdirTemp(t)

			filepath, err := WriteJSONExport(sampleExport(), "my_export.json")
			if err != nil {
				t.Fatalf("WriteJSONExport failed: %v", err)
			}

			if filepath != "my_export.json" {
				t.Errorf("Expected 'my_export.json', got '%s'", filepath)
			}
			th.AssertFileExists(t, filepath)
		})
	})

	t.Run("SaveReportJSON", func(t *testing.T) {
		report := &tasks.TransferReport{
			PlaylistName:     "Road Trip",
			TotalTracks:      5,
			TransferredCount: 4,
			FailedTracks:     []tasks.FailedTrack{{Name: "Song 3", Artists: []string{"Artist 3"}}},
			PlaylistID:       "yt_playlist_1",
		}

		t.Run("WithDefaultPath", func(t *testing.T) {
			chdirTemp(t)

			path, err := SaveReportJSON(report, "")
			if err != nil {
				t.Fatalf("SaveReportJSON failed: %v", err)
			}

			if path != "transfer_report_yt_playlist_1.json" {
				t.Errorf("Expected 'transfer_report_yt_playlist_1.json', got '%s'", path)
			}
			th.AssertFileExists(t, path)

			content := th.MustReadFile(t, path)
			for _, want := range []string{`"playlist_name": "Road Trip"`, `"transferred_count": 4`, `"ytm_playlist_id": "yt_playlist_1"`} {
				if !strings.Contains(content, want) {
					t.Errorf("report JSON missing %s, got: %s", want, content)
				}
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			chdirTemp(t)

			path, err := SaveReportJSON(report, "report.json")
			if err != nil {
				t.Fatalf("SaveReportJSON failed: %v", err)
			}

			if path != "report.json" {
				t.Errorf("Expected 'report.json', got '%s'", path)
			}
			th.AssertFileExists(t, path)
		})
	})
}
