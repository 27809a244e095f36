package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
)

// Unauthenticated YouTube transcript retrieval.
// Primary:  watch page ytInitialPlayerResponse → caption XML (works from any IP)
// Fallback: /next → engagement panel → /get_transcript  (works from datacenter IPs)
// Fallback: ANDROID Innertube /player → captionTracks   (works from non-blocked IPs)

// ErrNoCaptionTracks is returned when YouTube reports no caption tracks for a video.
var ErrNoCaptionTracks = errors.New("no caption tracks")

// CaptionTrackInfo describes one caption track seen by the scraper.
type CaptionTrackInfo struct {
	Language      string
	Name          string
	AutoGenerated bool
}

// getTranscriptRE extracts the continuation token from a raw /next JSON response.
var getTranscriptRE = regexp.MustCompile(`"getTranscriptEndpoint":\{"params":"([^"]+)"`)

func extractTranscriptToken(data []byte) (string, error) {
	if m := getTranscriptRE.FindSubmatch(data); len(m) >= 2 {
		// /get_transcript expects the URL-decoded (raw base64) form.
		decoded, err := url.QueryUnescape(string(m[1]))
		if err != nil {
			return string(m[1]), nil
		}
		return decoded, nil
	}
	return "", errors.New("getTranscriptEndpoint not found in engagement panels")
}

// parseTranscriptSegments extracts plain text from a /get_transcript JSON response.
func parseTranscriptSegments(resp ytGetTranscriptResp) string {
	var sb strings.Builder
	for _, action := range resp.Actions {
		if action.UpdateEngagementPanelAction == nil {
			continue
		}
		segs := action.UpdateEngagementPanelAction.Content.
			TranscriptRenderer.Content.
			TranscriptSearchPanelRenderer.Body.
			TranscriptSegmentListRenderer.InitialSegments
		for _, seg := range segs {
			if seg.TranscriptSegmentRenderer == nil {
				continue
			}
			for _, run := range seg.TranscriptSegmentRenderer.Snippet.Runs {
				text := engine.CleanCaptionLine(run.Text)
				if text == "" {
					continue
				}
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
	}
	return sb.String()
}

// fetchTranscriptViaEngagementPanel fetches a transcript via:
//  1. POST /next → engagementPanels containing the transcript continuation token
//  2. POST /get_transcript with the token → JSON segments
//
// Language selection is YouTube's; this path ignores langs.
func fetchTranscriptViaEngagementPanel(ctx context.Context, videoID string) (string, error) {
	visitorData := generateVisitorData()

	nextData, err := postInnerTubeWEB(ctx, ytNextURL, map[string]any{
		"videoId": videoID,
		"context": ytWebContext(visitorData),
	}, visitorData)
	if err != nil {
		return "", fmt.Errorf("/next: %w", err)
	}

	token, err := extractTranscriptToken(nextData)
	if err != nil {
		return "", fmt.Errorf("token: %w", err)
	}

	transcriptData, err := postInnerTubeWEB(ctx, ytGetTranscriptURL, map[string]any{
		"params": token,
		"context": map[string]any{
			"client": ytWebClientCtx{
				ClientName:    "WEB",
				ClientVersion: ytWebVersion,
				VisitorData:   visitorData,
				Hl:            "en",
				Gl:            "US",
			},
		},
	}, visitorData)
	if err != nil {
		return "", fmt.Errorf("/get_transcript: %w", err)
	}

	var transcriptResp ytGetTranscriptResp
	if err := json.Unmarshal(transcriptData, &transcriptResp); err != nil {
		return "", fmt.Errorf("decode transcript: %w", err)
	}

	text := parseTranscriptSegments(transcriptResp)
	if text == "" {
		return "", errors.New("empty transcript segments")
	}
	return text, nil
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given language preferences.
// Skips tracks that require PoToken; those only work in a browser.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	// 1. Manual track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	// 2. Auto-generated track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	// 3. Any English track
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// parseTimedText flattens a timedtext XML document into space-joined plain text.
func parseTimedText(body []byte) (string, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}

	var sb strings.Builder
	for _, line := range tt.Lines {
		text := engine.CleanCaptionLine(line.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL.
func fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch timedtext: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return "", err
	}
	text, err := parseTimedText(body)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.New("empty timedtext document")
	}
	return text, nil
}

// fetchPlayerViaAndroid asks the ANDROID Innertube /player endpoint for the player response.
func fetchPlayerViaAndroid(ctx context.Context, videoID string) (innertubePlayerResp, error) {
	var playerResp innertubePlayerResp
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return playerResp, err
	}

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, ytInnertubeURL+"?prettyPrint=false", bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", ytAndroidUA)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return playerResp, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&playerResp); err != nil {
		return playerResp, fmt.Errorf("decode player: %w", err)
	}
	return playerResp, nil
}

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// parseWatchPage extracts ytInitialPlayerResponse from watch page HTML.
func parseWatchPage(body []byte) (innertubePlayerResp, error) {
	var playerResp innertubePlayerResp
	idx := bytes.Index(body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return playerResp, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return playerResp, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return playerResp, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return playerResp, nil
}

// fetchPlayerViaPageScrape scrapes the watch page for its embedded player response.
func fetchPlayerViaPageScrape(ctx context.Context, videoID string) (innertubePlayerResp, error) {
	body, err := engine.FetchPage(ctx, WatchURL(videoID), 6*1024*1024)
	if err != nil {
		return innertubePlayerResp{}, fmt.Errorf("watch page: %w", err)
	}
	return parseWatchPage(body)
}

// transcriptFromPlayer picks a track from a player response and downloads it.
func transcriptFromPlayer(ctx context.Context, playerResp innertubePlayerResp, langs []string) (string, error) {
	tracks, err := playerResp.tracks()
	if err != nil {
		return "", err
	}
	track, ok := pickBestTrack(tracks, langs)
	if !ok {
		return "", errors.New("all caption tracks require PoToken")
	}
	return fetchTimedText(ctx, track.BaseURL)
}

// FetchYouTubeTranscript fetches plain caption text for a video without credentials.
// langs lists preferred language codes; nil lets the scraper choose.
// Returns an error wrapping ErrNoCaptionTracks when YouTube reports no tracks.
func FetchYouTubeTranscript(ctx context.Context, videoID string, langs []string) (string, error) {
	engine.IncrYouTubeTranscript()

	player, err := fetchPlayerViaPageScrape(ctx, videoID)
	if err == nil {
		var text string
		if text, err = transcriptFromPlayer(ctx, player, langs); err == nil {
			return text, nil
		}
	}
	noTracks := errors.Is(err, ErrNoCaptionTracks)
	slog.Warn("youtube: page scrape failed, trying engagement panel",
		slog.String("id", videoID), slog.Any("err", err))

	if text, err := fetchTranscriptViaEngagementPanel(ctx, videoID); err == nil {
		return text, nil
	} else {
		slog.Warn("youtube: engagement panel failed, trying player",
			slog.String("id", videoID), slog.Any("err", err))
	}

	player, err = fetchPlayerViaAndroid(ctx, videoID)
	if err == nil {
		var text string
		if text, err = transcriptFromPlayer(ctx, player, langs); err == nil {
			return text, nil
		}
	}
	if noTracks && !errors.Is(err, ErrNoCaptionTracks) {
		return "", fmt.Errorf("%w (watch page); player: %w", ErrNoCaptionTracks, err)
	}
	return "", err
}

// ListYouTubeCaptionTracks lists the caption tracks YouTube offers for a video.
func ListYouTubeCaptionTracks(ctx context.Context, videoID string) ([]CaptionTrackInfo, error) {
	player, err := fetchPlayerViaPageScrape(ctx, videoID)
	if err != nil {
		slog.Warn("youtube: page scrape failed, listing via player",
			slog.String("id", videoID), slog.Any("err", err))
		if player, err = fetchPlayerViaAndroid(ctx, videoID); err != nil {
			return nil, err
		}
	}
	tracks, err := player.tracks()
	if err != nil {
		return nil, err
	}
	return trackInfos(tracks), nil
}

func trackInfos(tracks []captionTrack) []CaptionTrackInfo {
	out := make([]CaptionTrackInfo, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, CaptionTrackInfo{
			Language:      t.LanguageCode,
			Name:          t.Name.String(),
			AutoGenerated: t.Kind == "asr",
		})
	}
	return out
}
