package services

import (
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfiles() []models.Profile {
	return []models.Profile{
		{
			ID:               "p1",
			FullName:         "Asha Verma",
			SkillsToTeach:    "Guitar, Music Theory",
			SkillsToLearn:    "Python",
			AvailabilityDays: "Monday, Wednesday",
		},
		{
			ID:               "p2",
			FullName:         "Ben Okafor",
			SkillsToTeach:    "Python, Django",
			SkillsToLearn:    "Guitar",
			AvailabilityDays: "Saturday, Sunday",
		},
		{
			ID:            "p3",
			FullName:      "Carla Reyes",
			Bio:           "Photographer who loves teaching",
			SkillsToTeach: "Photography",
			SkillsToLearn: "Spanish",
		},
		{
			ID:            "p4",
			FullName:      "Dev Nair",
			SkillsToLearn: "Photography",
		},
	}
}

func TestFilterProfilesByTerm(t *testing.T) {
	got := FilterProfiles(sampleProfiles(), "guitar", FilterAll, "")

	// Matches in either skill direction.
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p2", got[1].ID)
}

func TestFilterProfilesByTermCaseInsensitive(t *testing.T) {
	got := FilterProfiles(sampleProfiles(), "GUITAR", FilterAll, "")
	assert.Len(t, got, 2)
}

func TestFilterProfilesTeachOnly(t *testing.T) {
	got := FilterProfiles(sampleProfiles(), "guitar", FilterTeach, "")

	require.Len(t, got, 2)
	for _, p := range got {
		assert.NotEmpty(t, p.SkillsToTeach)
	}
}

func TestFilterProfilesLearnFilterDropsNonLearners(t *testing.T) {
	got := FilterProfiles(sampleProfiles(), "photography", FilterLearn, "")

	require.Len(t, got, 2)
	assert.Equal(t, "p3", got[0].ID)
	assert.Equal(t, "p4", got[1].ID)
}

func TestFilterProfilesByBio(t *testing.T) {
	got := FilterProfiles(sampleProfiles(), "photographer", FilterAll, "")

	require.Len(t, got, 1)
	assert.Equal(t, "p3", got[0].ID)
}

func TestFilterProfilesByDay(t *testing.T) {
	got := FilterProfiles(sampleProfiles(), "", FilterAll, "monday")

	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
}

func TestFilterProfilesTermAndDay(t *testing.T) {
	got := FilterProfiles(sampleProfiles(), "guitar", FilterAll, "saturday")

	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)
}

func TestFilterProfilesEmptyTermKeepsAll(t *testing.T) {
	got := FilterProfiles(sampleProfiles(), "  ", FilterAll, "")
	assert.Len(t, got, 4)
}

func TestFilterProfilesNoMatch(t *testing.T) {
	got := FilterProfiles(sampleProfiles(), "welding", FilterAll, "")
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
