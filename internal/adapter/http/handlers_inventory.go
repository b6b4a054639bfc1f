package adapthttp

import (
	"errors"
	"fmt"
	"net/http"

	"motors/internal/domain"
)

func (s *Server) handleClassification(w http.ResponseWriter, r *http.Request) {
	classID, ok := paramInt64(r, "classificationID")
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	vehicles, err := s.inventory.VehiclesByClassification(r.Context(), classID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	title := "No vehicles found"
	if len(vehicles) > 0 {
		title = vehicles[0].ClassificationName + " vehicles"
	}
	data := s.view(w, r, title)
	data.Data = vehicles
	s.render(w, http.StatusOK, "classification", data)
}

func (s *Server) handleVehicleDetail(w http.ResponseWriter, r *http.Request) {
	invID, ok := paramInt64(r, "invID")
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	v, err := s.inventory.VehicleByID(r.Context(), invID)
	if errors.Is(err, domain.ErrNotFound) {
		data := s.view(w, r, "Vehicle Not Found")
		data.Data = "The vehicle you are looking for does not exist."
		s.render(w, http.StatusNotFound, "error", data)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	data := s.view(w, r, fmt.Sprintf("%s %s", v.Make, v.Model))
	data.Data = v
	s.render(w, http.StatusOK, "detail", data)
}

func (s *Server) handleManageInventory(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.inventory.AllVehicles(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	data := s.view(w, r, "Inventory Management")
	data.Data = struct {
		Vehicles []domain.Vehicle
	}{vehicles}
	s.render(w, http.StatusOK, "manage", data)
}

func (s *Server) handleAddClassificationView(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "add-classification", s.view(w, r, "Add Classification"))
}

func (s *Server) handleAddClassification(w http.ResponseWriter, r *http.Request) {
	f := readClassificationForm(r)
	if errs := f.validate(); len(errs) > 0 {
		data := s.view(w, r, "Add Classification")
		data.Errors = errs
		data.Form["classification_name"] = f.Name
		s.render(w, http.StatusBadRequest, "add-classification", data)
		return
	}

	if _, err := s.inventory.AddClassification(r.Context(), f.Name); err != nil {
		s.serverError(w, r, err)
		return
	}

	setNotice(w, fmt.Sprintf("The %s classification was added.", f.Name))
	http.Redirect(w, r, "/inv/", http.StatusSeeOther)
}

func (s *Server) handleAddVehicleView(w http.ResponseWriter, r *http.Request) {
	data := s.view(w, r, "Add Vehicle")
	data.Data = data.Nav
	s.render(w, http.StatusOK, "add-inventory", data)
}

func (s *Server) handleAddVehicle(w http.ResponseWriter, r *http.Request) {
	f := readVehicleForm(r)
	if errs := f.validate(); len(errs) > 0 {
		data := s.view(w, r, "Add Vehicle")
		data.Errors = errs
		data.Form = f.values()
		data.Data = data.Nav
		s.render(w, http.StatusBadRequest, "add-inventory", data)
		return
	}

	v := f.vehicle()
	if _, err := s.inventory.AddVehicle(r.Context(), v); err != nil {
		s.serverError(w, r, err)
		return
	}

	setNotice(w, fmt.Sprintf("The %s %s was added.", v.Make, v.Model))
	http.Redirect(w, r, "/inv/", http.StatusSeeOther)
}
