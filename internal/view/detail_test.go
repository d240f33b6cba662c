package view

import (
	"testing"

	"movieflix/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDetailSections(t *testing.T) {
	m := &model.MovieDetail{}
	assert.Nil(t, Trailer(m))
	assert.Empty(t, TopCast(m))
	assert.Empty(t, Similar(m))

	m.Videos.Results = []model.Video{
		{Key: "t1", Site: "YouTube", Type: "Teaser"},
		{Key: "v1", Site: "Vimeo", Type: "Trailer"},
		{Key: "y1", Site: "YouTube", Type: "Trailer"},
		{Key: "y2", Site: "YouTube", Type: "Trailer"},
	}
	for i := 0; i < 10; i++ {
		m.Credits.Cast = append(m.Credits.Cast, model.CastMember{ID: i})
		m.Similar.Results = append(m.Similar.Results, model.MovieSummary{ID: i})
	}

	assert.Equal(t, "y1", Trailer(m).Key)
	assert.Len(t, TopCast(m), 6)
	assert.Equal(t, 0, TopCast(m)[0].ID)
	assert.Len(t, Similar(m), 4)
}
