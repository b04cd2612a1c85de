package instagram

import (
	"encoding/json"
	"encoding/xml"
	"sort"

	"github.com/peekpost/peekpost/app/apperr"
)

// Normalizer transforms a raw GraphQL response into a Post. A missing media
// item is the only fatal condition; every other absent or malformed field
// degrades to its empty value so the output schema stays stable under
// upstream drift.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

func (n *Normalizer) Run(data []byte) (*Post, error) {
	var envelope rawEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, apperr.Wrap(apperr.KindMalformedResponse, "Failed to decode upstream response", err)
	}

	items := envelope.Data.WebInfo.Items
	if len(items) == 0 {
		return nil, apperr.New(apperr.KindMalformedResponse, "Media item missing from upstream response")
	}

	var item document
	if err := json.Unmarshal(items[0], &item); err != nil {
		return nil, apperr.Wrap(apperr.KindMalformedResponse, "Media item is not an object", err)
	}

	post := &Post{
		PostInfo:          n.extractPostInfo(item),
		Author:            n.extractAuthor(item),
		VideoURLs:         n.extractVariantURLs(item.raw("video_versions")),
		ThumbnailURLs:     n.extractVariantURLs(item.doc("image_versions2").raw("candidates")),
		AudioURL:          n.extractAudioURL(envelope.Extensions),
		ClipsMetadata:     item.raw("clips_metadata"),
		IsPaidPartnership: item.boolOr("is_paid_partnership", false),
		CanViewerReshare:  item.boolOr("can_viewer_reshare", false),
		CommentsDisabled:  item.boolOr("comments_disabled", false),
		SocialContext:     item.str("social_context"),
		FbLikeCount:       item.int64v("fb_like_count"),
	}

	return post, nil
}

func (n *Normalizer) extractPostInfo(item document) PostInfo {
	info := PostInfo{
		Shortcode:      item.str("code"),
		ID:             item.stringish("id"),
		TakenAt:        item.int64v("taken_at"),
		LikeCount:      item.int64v("like_count"),
		CommentCount:   item.int64v("comment_count"),
		ViewCount:      item.int64v("view_count"),
		HasAudio:       item.boolOr("has_audio", false),
		MediaType:      item.intv("media_type"),
		OriginalWidth:  item.intv("original_width"),
		OriginalHeight: item.intv("original_height"),
	}

	// Caption text is only meaningful when the caption field is an object.
	if caption := item.doc("caption"); caption != nil {
		info.Caption = caption.str("text")
	}

	info.Duration = n.extractDuration(item.str("video_dash_manifest"))

	return info
}

func (n *Normalizer) extractAuthor(item document) *Author {
	user := item.doc("user")
	if user == nil {
		return nil
	}

	return &Author{
		ID:            user.stringish("pk"),
		Username:      user.str("username"),
		FullName:      user.str("full_name"),
		ProfilePicURL: user.str("profile_pic_url"),
		IsVerified:    user.boolOr("is_verified", false),
		IsPrivate:     user.boolOr("is_private", false),
	}
}

// extractVariantURLs sorts encoded variants by width descending so the
// first URL is the highest-resolution candidate. Variants without a width
// sink to the end.
func (n *Normalizer) extractVariantURLs(raw json.RawMessage) []string {
	var variants []variant
	if err := json.Unmarshal(raw, &variants); err != nil {
		return []string{}
	}

	sort.SliceStable(variants, func(i, j int) bool {
		return variantWidth(variants[i]) > variantWidth(variants[j])
	})

	urls := make([]string, 0, len(variants))
	for _, v := range variants {
		if v.URL != "" {
			urls = append(urls, v.URL)
		}
	}

	return urls
}

func variantWidth(v variant) int {
	if v.Width == nil {
		return 0
	}
	return *v.Width
}

// extractAudioURL searches the dash prefetch representations for the first
// audio/mp4 entry and stops at the first match.
func (n *Normalizer) extractAudioURL(extensions json.RawMessage) *string {
	var ext document
	if err := json.Unmarshal(extensions, &ext); err != nil {
		return nil
	}

	var prefetch []prefetchVideo
	if err := json.Unmarshal(ext.raw("all_video_dash_prefetch_representations"), &prefetch); err != nil {
		return nil
	}

	for _, video := range prefetch {
		for _, rep := range video.Representations {
			if rep.MimeType != nil && *rep.MimeType == "audio/mp4" {
				return rep.BaseURL
			}
		}
	}

	return nil
}

// extractDuration reads mediaPresentationDuration from the embedded DASH
// manifest. Best-effort: any parse failure omits the field.
func (n *Normalizer) extractDuration(manifest *string) *string {
	if manifest == nil || *manifest == "" {
		return nil
	}

	var mpd struct {
		MediaPresentationDuration string `xml:"mediaPresentationDuration,attr"`
	}
	if err := xml.Unmarshal([]byte(*manifest), &mpd); err != nil {
		return nil
	}

	if mpd.MediaPresentationDuration == "" {
		return nil
	}

	return &mpd.MediaPresentationDuration
}
