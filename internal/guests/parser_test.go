package guests_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddinginvites/internal/guests"
	"weddinginvites/internal/models"
)

func names(records []models.GuestRecord) [][2]string {
	out := make([][2]string, len(records))
	for i, r := range records {
		out[i] = [2]string{r.FirstName, r.LastName}
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  [][2]string
	}{
		{
			name:  "SharedSurnameInferred",
			input: []string{"Jane Smith", "Bob"},
			want:  [][2]string{{"Jane", "Smith"}, {"Bob", "Smith"}},
		},
		{
			name:  "DistinctSurnamesKept",
			input: []string{"Jane Smith", "Bob Jones"},
			want:  [][2]string{{"Jane", "Smith"}, {"Bob", "Jones"}},
		},
		{
			name:  "DistinctSurnamesNoInference",
			input: []string{"Jane Smith", "Bob Jones", "Cy"},
			want:  [][2]string{{"Jane", "Smith"}, {"Bob", "Jones"}, {"Cy", ""}},
		},
		{
			name:  "DuplicateSurnamesCollapse",
			input: []string{"Jane Smith", "Bob Smith", "Cy"},
			want:  [][2]string{{"Jane", "Smith"}, {"Bob", "Smith"}, {"Cy", "Smith"}},
		},
		{
			name:  "NoExplicitSurname",
			input: []string{"Amy", "Bo"},
			want:  [][2]string{{"Amy", ""}, {"Bo", ""}},
		},
		{
			name:  "MultiTokenSurname",
			input: []string{"Mary Anne van der Berg", "Kees"},
			want:  [][2]string{{"Mary", "Anne van der Berg"}, {"Kees", "Anne van der Berg"}},
		},
		{
			name:  "ExtraWhitespaceCollapsed",
			input: []string{"  Jane   Smith ", "Bob"},
			want:  [][2]string{{"Jane", "Smith"}, {"Bob", "Smith"}},
		},
		{
			name:  "SingleGuest",
			input: []string{"Amy"},
			want:  [][2]string{{"Amy", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := guests.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
			for _, r := range got {
				assert.Empty(t, r.DietaryRequirements)
				assert.Equal(t, models.StatusPending, r.AttendingStatus)
			}
		})
	}
}

func TestParse_RejectsEmptyName(t *testing.T) {
	_, err := guests.Parse([]string{"Jane Smith", "   "})

	var nameErr *guests.InvalidGuestNameError
	require.ErrorAs(t, err, &nameErr)
	assert.Equal(t, 1, nameErr.Position)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Jane Smith", "Bob"}, guests.SplitList(" Jane Smith , Bob "))
	assert.Equal(t, []string{"a@example.com"}, guests.SplitList("a@example.com"))
	assert.Nil(t, guests.SplitList("   "))
	assert.Equal(t, []string{"Jane", ""}, guests.SplitList("Jane,"))
}

func TestPlusOne(t *testing.T) {
	assert.True(t, guests.PlusOne("yes"))
	assert.True(t, guests.PlusOne(" YES "))
	assert.False(t, guests.PlusOne("no"))
	assert.False(t, guests.PlusOne(""))
}
