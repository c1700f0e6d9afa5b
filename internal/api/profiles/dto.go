package profilesapi

import "time"

type MeResponse struct {
	Profile ProfileDTO `json:"profile"`
	Stats   StatsDTO   `json:"stats"`
	Share   *ShareDTO  `json:"share,omitempty"`
}

/* ---------- PROFILE ---------- */

type ProfileDTO struct {
	ID                string  `json:"id"`
	Email             string  `json:"email"`
	FullName          string  `json:"full_name"`
	Username          *string `json:"username"`
	UserType          string  `json:"user_type"`
	ProfileVisibility string  `json:"profile_visibility"`
	Bio               *string `json:"bio"`
	Website           *string `json:"website"`
	Phone             *string `json:"phone"`
	IsVerified        bool    `json:"is_verified"`
}

/* ---------- STATS ---------- */

type StatsDTO struct {
	Artworks         int `json:"artworks"`
	VerifiedArtworks int `json:"verified_artworks"`
	BoundTags        int `json:"bound_tags"`
	Certificates     int `json:"certificates"`
}

/* ---------- SHARE ---------- */

type ShareDTO struct {
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

/* ---------- PUBLIC ---------- */

type PublicProfileResponse struct {
	FullName string             `json:"full_name"`
	Username *string            `json:"username"`
	UserType string             `json:"user_type"`
	Bio      *string            `json:"bio"`
	Website  *string            `json:"website"`
	Artworks []PublicArtworkDTO `json:"artworks"`
}

type PublicArtworkDTO struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist,omitempty"`
	Year       int       `json:"year,omitempty"`
	Medium     string    `json:"medium,omitempty"`
	Dimensions string    `json:"dimensions,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
