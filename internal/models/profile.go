package models

import "time"

// Profile is a member's public skill-exchange profile. The record id is
// the owning member's id: one profile per identity, created lazily on the
// first save and mutated only by its owner.
type Profile struct {
	ID                  string    `bson:"_id" json:"id"`
	FullName            string    `bson:"full_name" json:"fullName"`
	Bio                 string    `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfilePicture      string    `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	SkillsToTeach       string    `bson:"skills_to_teach,omitempty" json:"skillsToTeach,omitempty"`
	SkillsToLearn       string    `bson:"skills_to_learn,omitempty" json:"skillsToLearn,omitempty"`
	IsAvailable         bool      `bson:"is_available" json:"isAvailable"`
	AvailabilityDetails string    `bson:"availability_details,omitempty" json:"availabilityDetails,omitempty"`
	AvailabilityDays    string    `bson:"availability_days,omitempty" json:"availabilityDays,omitempty"` // comma-joined day names
	GithubID            string    `bson:"github_id,omitempty" json:"githubId,omitempty"`
	LinkedinURL         string    `bson:"linkedin_url,omitempty" json:"linkedinUrl,omitempty"`
	InstagramID         string    `bson:"instagram_id,omitempty" json:"instagramId,omitempty"`
	CreatedAt           time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at" json:"updated_at"`
}
