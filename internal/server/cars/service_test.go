package cars

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"carvault/internal/common"
)

func newSvc(t *testing.T) *Service {
	t.Helper()
	return NewService(newRepo(t))
}

func TestServiceCreate_DefaultsImageURL(t *testing.T) {
	svc := newSvc(t)

	car, err := svc.Create(context.Background(), "owner-a", CreateParams{
		Brand: "Honda",
		Model: "Civic",
		Year:  2020,
		Price: 15000,
	})
	require.NoError(t, err)
	require.Equal(t, DefaultImageURL, car.ImageURL)
	require.Equal(t, "owner-a", car.CreatedBy)
}

func TestServiceCreate_Validation(t *testing.T) {
	svc := newSvc(t)

	cases := []struct {
		name   string
		params CreateParams
	}{
		{"missing fields", CreateParams{}},
		{"year too old", CreateParams{Brand: "Honda", Model: "Civic", Year: 1899, Price: 100}},
		{"year in the future", CreateParams{Brand: "Honda", Model: "Civic", Year: time.Now().Year() + 2, Price: 100}},
		{"negative price", CreateParams{Brand: "Honda", Model: "Civic", Year: 2020, Price: -5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "owner-a", tc.params)
			require.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestServiceUpdate_ValidatesOnlyProvidedFields(t *testing.T) {
	svc := newSvc(t)

	car, err := svc.Create(context.Background(), "owner-a", CreateParams{
		Brand: "Honda", Model: "Civic", Year: 2020, Price: 15000,
	})
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update(context.Background(), car.ID, "owner-a", UpdateParams{Brand: &empty})
	require.ErrorIs(t, err, common.ErrorValidation)

	badYear := 1800
	_, err = svc.Update(context.Background(), car.ID, "owner-a", UpdateParams{Year: &badYear})
	require.ErrorIs(t, err, common.ErrorValidation)

	desc := "well kept"
	updated, err := svc.Update(context.Background(), car.ID, "owner-a", UpdateParams{Description: &desc})
	require.NoError(t, err)
	require.Equal(t, "well kept", updated.Description)
}
