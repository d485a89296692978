package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"carvault/internal/common"
	"carvault/internal/server/cars"
)

// carRequest covers both create and update payloads. Pointer fields
// distinguish "absent" from "set to the zero value" for partial updates.
type carRequest struct {
	Brand       *string  `json:"brand"`
	Model       *string  `json:"model"`
	Year        *int     `json:"year"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	Description *string  `json:"description"`
}

type carResponse struct {
	Message string   `json:"message"`
	Car     cars.Car `json:"car"`
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Server) requireIdentity(w http.ResponseWriter, r *http.Request) (Identity, bool) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		s.writeError(w, r, common.ErrorUnauthorized)
	}
	return identity, ok
}

func (s *Server) listCars(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}

	owned, err := s.cars.List(r.Context(), identity.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, owned)
}

func (s *Server) createCar(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}

	var req carRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid request body", common.ErrorValidation))
		return
	}

	params := cars.CreateParams{
		Brand:       strOrEmpty(req.Brand),
		Model:       strOrEmpty(req.Model),
		ImageURL:    strOrEmpty(req.ImageURL),
		Description: strOrEmpty(req.Description),
	}
	if req.Year != nil {
		params.Year = *req.Year
	}
	if req.Price != nil {
		params.Price = *req.Price
	}

	car, err := s.cars.Create(r.Context(), identity.UserID, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, carResponse{
		Message: "Car created successfully",
		Car:     *car,
	})
}

func (s *Server) getCar(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}

	car, err := s.cars.Get(r.Context(), chi.URLParam(r, "id"), identity.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, car)
}

func (s *Server) updateCar(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}

	var req carRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid request body", common.ErrorValidation))
		return
	}

	params := cars.UpdateParams{
		Brand:       req.Brand,
		Model:       req.Model,
		Year:        req.Year,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Description: req.Description,
	}

	car, err := s.cars.Update(r.Context(), chi.URLParam(r, "id"), identity.UserID, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, carResponse{
		Message: "Car updated successfully",
		Car:     *car,
	})
}

func (s *Server) deleteCar(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}

	if err := s.cars.Delete(r.Context(), chi.URLParam(r, "id"), identity.UserID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Car deleted successfully"})
}

func (s *Server) sellCar(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}

	car, err := s.cars.MarkSold(r.Context(), chi.URLParam(r, "id"), identity.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, car)
}
