package rules

import (
	"context"
	"fmt"

	"github.com/felixarntz/screen-reader-check/internal/dom"
	"github.com/felixarntz/screen-reader-check/internal/model"
)

var videoExtensions = map[string]bool{
	"3g2": true, "3gp": true, "3gpp": true, "asf": true, "avi": true,
	"divx": true, "dv": true, "flv": true, "m4v": true, "mkv": true,
	"mov": true, "mp4": true, "mpeg": true, "mpg": true, "mpv": true,
	"ogm": true, "ogv": true, "qt": true, "rm": true, "vob": true,
	"wmv": true,
}

var audioExtensions = map[string]bool{
	"aac": true, "ac3": true, "aif": true, "aiff": true, "m3a": true,
	"m4a": true, "m4b": true, "mka": true, "mp1": true, "mp2": true,
	"mp3": true, "ogg": true, "oga": true, "ram": true, "wav": true,
	"wma": true,
}

func isVideoFile(src string) bool { return videoExtensions[srcFileExtension(src)] }
func isAudioFile(src string) bool { return audioExtensions[srcFileExtension(src)] }

// videoAlternatives checks that embedded videos provide media
// alternatives: silent videos need an audio or text alternative, videos
// with audio need an audio description. Both facts cannot be derived from
// markup, so the rule asks.
type videoAlternatives struct{}

func (videoAlternatives) Metadata() Metadata {
	return Metadata{
		Slug:        "video_alternatives",
		Title:       "Alternatives for video content",
		Description: "Silent video files that convey information must have proper media alternatives. For visual video content an audio description is required.",
		Guideline: model.Guideline{
			Title:  "1.2.1 Audio-only and Video-only (Prerecorded)",
			Anchor: "media-equiv-av-only-alt",
		},
		Links: []model.Link{
			{
				Target: "https://www.w3.org/TR/WCAG20/#media-equiv-audio-desc",
				Title:  "1.2.3 Audio Description or Media Alternative (Prerecorded)",
			},
			{
				Target: "https://www.w3.org/TR/WCAG20-TECHS/H53",
				Title:  "Using the body of the object element",
			},
		},
	}
}

// videoSrc resolves the media source of a video-carrying element, or ""
// when the element does not reference a video file.
func videoSrc(video *dom.Node) string {
	switch video.TagName() {
	case "object":
		if data, ok := video.GetAttribute("data"); ok && isVideoFile(data) {
			return data
		}
	case "embed":
		if src, ok := video.GetAttribute("src"); ok && isVideoFile(src) {
			return src
		}
	default: // video
		if source := video.FindFirst("source"); source != nil {
			src, _ := source.GetAttribute("src")
			return src
		}
	}
	return ""
}

// alternativeSrc finds the source of a nested media alternative.
func alternativeSrc(video *dom.Node) string {
	alternative := video.FindFirst("object,embed,audio")
	if alternative == nil {
		return ""
	}
	if alternative.TagName() == "object" {
		src, _ := alternative.GetAttribute("data")
		return src
	}
	src, _ := alternative.GetAttribute("src")
	return src
}

func (videoAlternatives) Run(_ context.Context, rep *Report, doc *dom.Document, opts Options) error {
	videos := doc.Find("object,embed,video")
	if len(videos) == 0 {
		rep.Skip("There are no video files in the HTML code provided. Therefore this test was skipped.")
		rep.Finish("")
		return nil
	}

	requested := make(map[string]bool)
	found := false

	for _, video := range videos {
		src := videoSrc(video)
		if src == "" {
			continue
		}
		found = true

		sanitized := SanitizeSrc(src)
		altSrc := alternativeSrc(video)
		hasAudioAlternative := altSrc != "" && isAudioFile(altSrc)

		videoType, answered := opts.Value("video_type_" + sanitized)
		if !answered {
			if !requested[sanitized] {
				requested[sanitized] = true
				rep.Request(model.RequestData{
					Slug:        "video_type_" + sanitized,
					Type:        "select",
					Label:       "Video Type",
					Description: fmt.Sprintf("Specify whether the video %s is video-only content or whether it also contains audio.", rep.LinkSrc(src)),
					Options: []model.Choice{
						{Value: "video_only", Label: "Video-only"},
						{Value: "has_audio", Label: "Video with audio"},
					},
					Default: "has_audio",
				})
			}
			continue
		}

		if hasAudioAlternative {
			continue
		}

		if videoType == "video_only" {
			answer, ok := opts.Value("video_alternative_audio_or_text_" + sanitized)
			if !ok {
				rep.Request(model.RequestData{
					Slug:        "video_alternative_audio_or_text_" + sanitized,
					Type:        "select",
					Label:       "Alternative Audio or Text available?",
					Description: fmt.Sprintf("Specify whether an audio or text alternative is provided for the silent video %s.", rep.LinkSrc(src)),
					Options:     yesNoChoices(),
					Default:     "no",
				})
				continue
			}
			if answer == "yes" {
				rep.WarnAt(video, "warning_alternative_content_outside_of_body",
					"The alternative content for the following silent video should be located in the element body:")
			} else {
				rep.ErrorAt(video, "error_missing_alternative_content",
					"The following silent video is missing an audio or text alternative:")
			}
			continue
		}

		answer, ok := opts.Value("video_alternative_audio_description_" + sanitized)
		if !ok {
			rep.Request(model.RequestData{
				Slug:        "video_alternative_audio_description_" + sanitized,
				Type:        "select",
				Label:       "Alternative Audio Description available?",
				Description: fmt.Sprintf("Specify whether an audio description is provided for the video %s.", rep.LinkSrc(src)),
				Options:     yesNoChoices(),
				Default:     "no",
			})
			continue
		}
		if answer != "yes" {
			rep.ErrorAt(video, "error_missing_audio_description",
				"The following video is missing an audio description:")
		}
	}

	if !found {
		rep.Skip("There are no video files in the HTML code provided. Therefore this test was skipped.")
	}

	rep.Finish("All videos in the HTML code have valid alternative content provided.")
	return nil
}
