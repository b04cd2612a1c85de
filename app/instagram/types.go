package instagram

import (
	"encoding/json"
)

// Raw upstream shapes. Only the envelope down to the media item is decoded
// strictly; everything below it goes through document accessors.

type rawEnvelope struct {
	Data struct {
		WebInfo struct {
			Items []json.RawMessage `json:"items"`
		} `json:"xdt_api__v1__media__shortcode__web_info"`
	} `json:"data"`
	Extensions json.RawMessage `json:"extensions"`
}

// variant is one quality rendition of a video or image asset.
type variant struct {
	URL    string `json:"url"`
	Width  *int   `json:"width"`
	Height *int   `json:"height"`
}

type prefetchVideo struct {
	Representations []prefetchRepresentation `json:"representations"`
}

type prefetchRepresentation struct {
	MimeType *string `json:"mime_type"`
	BaseURL  *string `json:"base_url"`
}

// Normalized output. JSON field names match what downstream clients already
// consume.

type Post struct {
	PostInfo          PostInfo        `json:"reel_info"`
	Author            *Author         `json:"user,omitempty"`
	VideoURLs         []string        `json:"video_urls"`
	ThumbnailURLs     []string        `json:"thumbnail_urls"`
	AudioURL          *string         `json:"audio_url,omitempty"`
	ClipsMetadata     json.RawMessage `json:"clips_metadata,omitempty"`
	IsPaidPartnership bool            `json:"is_paid_partnership"`
	CanViewerReshare  bool            `json:"can_viewer_reshare"`
	CommentsDisabled  bool            `json:"comments_disabled"`
	SocialContext     *string         `json:"social_context,omitempty"`
	FbLikeCount       *int64          `json:"fb_like_count,omitempty"`
}

type PostInfo struct {
	Shortcode      *string `json:"shortcode,omitempty"`
	ID             *string `json:"id,omitempty"`
	TakenAt        *int64  `json:"taken_at,omitempty"`
	LikeCount      *int64  `json:"like_count,omitempty"`
	CommentCount   *int64  `json:"comment_count,omitempty"`
	ViewCount      *int64  `json:"view_count,omitempty"`
	HasAudio       bool    `json:"has_audio"`
	Caption        *string `json:"caption,omitempty"`
	MediaType      *int    `json:"media_type,omitempty"`
	OriginalWidth  *int    `json:"original_width,omitempty"`
	OriginalHeight *int    `json:"original_height,omitempty"`
	Duration       *string `json:"duration,omitempty"`
}

type Author struct {
	ID            *string `json:"id,omitempty"`
	Username      *string `json:"username,omitempty"`
	FullName      *string `json:"full_name,omitempty"`
	ProfilePicURL *string `json:"profile_pic_url,omitempty"`
	IsVerified    bool    `json:"is_verified"`
	IsPrivate     bool    `json:"is_private"`
}
