// Package backendtest is an in-memory stand-in for the remote rental
// backend, faithful to its endpoint contract. Tests and the demo mode run
// against it instead of a live deployment.
package backendtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"rentauto-client/internal/domain"
)

type user struct {
	id           int
	name         string
	email        string
	phone        string
	address      string
	passwordHash []byte
	status       string
	documents    []domain.UserDocument
}

type admin struct {
	id           int
	username     string
	email        string
	passwordHash []byte
}

type rental struct {
	id            int
	userID        int
	vehicleID     int
	startDate     string
	endDate       string
	totalCost     float64
	paymentMethod string
	paymentStatus string
	carStatus     string
	barcode       string
}

type payment struct {
	id       int
	rentalID int
	amount   float64
	method   string
	date     string
	status   string
	lateFee  float64
	total    float64
}

// Server holds the fake backend's state behind one mutex; every handler is
// a discrete request like the PHP scripts it imitates.
type Server struct {
	mu       sync.Mutex
	router   *mux.Router
	users    map[int]*user
	admins   map[int]*admin
	vehicles map[int]*domain.Vehicle
	rentals  map[int]*rental
	payments map[int]*payment
	nextID   int
}

func New() *Server {
	s := &Server{
		router:   mux.NewRouter(),
		users:    make(map[int]*user),
		admins:   make(map[int]*admin),
		vehicles: make(map[int]*domain.Vehicle),
		rentals:  make(map[int]*rental),
		payments: make(map[int]*payment),
		nextID:   1,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.HandleFunc("/login.php", s.handleLogin).Methods(http.MethodPost)
	s.router.HandleFunc("/register.php", s.handleRegister).Methods(http.MethodPost)
	s.router.HandleFunc("/adminLogin.php", s.handleAdminLogin).Methods(http.MethodPost)
	s.router.HandleFunc("/adminRegister.php", s.handleAdminRegister).Methods(http.MethodPost)
	s.router.HandleFunc("/viewCars.php", s.handleViewCars).Methods(http.MethodGet)
	s.router.HandleFunc("/getCarById.php", s.handleGetCarByID).Methods(http.MethodGet)
	s.router.HandleFunc("/modifyCar.php", s.handleModifyCar).Methods(http.MethodPost)
	s.router.HandleFunc("/deleteCar.php", s.handleDeleteCar).Methods(http.MethodPost)
	s.router.HandleFunc("/addCar.php", s.handleAddCar).Methods(http.MethodPost)
	s.router.HandleFunc("/getAllRecords.php", s.handleAllRecords).Methods(http.MethodGet)
	s.router.HandleFunc("/getAllPayments.php", s.handleAllPayments).Methods(http.MethodGet)
	s.router.HandleFunc("/rentCar.php", s.handleRentCar).Methods(http.MethodPost)
	s.router.HandleFunc("/returnCar.php", s.handleReturnCar).Methods(http.MethodPost)
	s.router.HandleFunc("/getPaymentUser.php", s.handlePaymentUser).Methods(http.MethodGet)
	s.router.HandleFunc("/getUserWithDocument.php", s.handleUserWithDocument).Methods(http.MethodGet)
}

func (s *Server) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

// SeedUser registers a user with a bcrypt-hashed password, the way the
// real backend stores credentials. Returns the user id.
func (s *Server) SeedUser(name, email, password string) int {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.allocID()
	s.users[id] = &user{id: id, name: name, email: email, passwordHash: hash, status: "active"}
	return id
}

// SeedAdmin registers an administrator account.
func (s *Server) SeedAdmin(username, password string) int {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.allocID()
	s.admins[id] = &admin{id: id, username: username, passwordHash: hash}
	return id
}

// SeedVehicle adds a vehicle to the fleet and returns its id.
func (s *Server) SeedVehicle(v domain.Vehicle) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == 0 {
		v.ID = s.allocID()
	}
	if v.AvailabilityStatus == "" {
		v.AvailabilityStatus = domain.StatusAvailable
	}
	stored := v
	s.vehicles[v.ID] = &stored
	return v.ID
}

// Vehicle returns the current backend-side state of a vehicle.
func (s *Server) Vehicle(id int) (domain.Vehicle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[id]
	if !ok {
		return domain.Vehicle{}, false
	}
	return *v, true
}

// LastReturnFee reports the additionalFee received for a rental's return.
func (s *Server) LastReturnFee(rentalID int) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.rentalID == rentalID {
			return p.lateFee, true
		}
	}
	return 0, false
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

func fail(w http.ResponseWriter, message string) {
	writeJSON(w, map[string]any{"success": false, "message": message})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		fail(w, "Malformed request")
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) != nil {
			fail(w, "Incorrect password")
			return
		}
		writeJSON(w, map[string]any{
			"success": true, "user_id": u.id, "name": u.name, "status": u.status,
		})
		return
	}
	fail(w, "User not found")
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, "Malformed request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.email == req.Email {
			fail(w, "Email already registered")
			return
		}
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	id := s.allocID()
	s.users[id] = &user{
		id: id, name: req.Name, email: req.Email, phone: req.Phone,
		address: req.Address, passwordHash: hash, status: "active",
	}
	writeJSON(w, map[string]any{"success": true, "user_id": id, "name": req.Name, "status": "active"})
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		fail(w, "Malformed request")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) != nil {
			fail(w, "Incorrect password")
			return
		}
		writeJSON(w, map[string]any{
			"success": true, "adminId": a.id, "username": a.username, "status": "active",
		})
		return
	}
	fail(w, "Admin not found")
}

func (s *Server) handleAdminRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, "Malformed request")
		return
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.allocID()
	s.admins[id] = &admin{id: id, username: req.Username, email: req.Email, passwordHash: hash}
	writeJSON(w, map[string]any{"success": true, "adminId": id, "username": req.Username, "status": "active"})
}

func (s *Server) handleViewCars(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vehicles := make([]domain.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		vehicles = append(vehicles, *v)
	}
	writeJSON(w, map[string]any{"success": true, "vehicles": vehicles})
}

func (s *Server) handleGetCarByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		fail(w, "Invalid vehicle id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[id]
	if !ok {
		fail(w, "Vehicle not found")
		return
	}
	writeJSON(w, map[string]any{"success": true, "vehicle": v})
}

func (s *Server) handleModifyCar(w http.ResponseWriter, r *http.Request) {
	var v domain.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		fail(w, "Malformed request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[v.ID]; !ok {
		fail(w, "Vehicle not found")
		return
	}
	updated := v
	s.vehicles[v.ID] = &updated
	writeJSON(w, map[string]any{"success": true, "message": "Vehicle updated"})
}

func (s *Server) handleDeleteCar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VehicleID int `json:"vehicle_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, "Malformed request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[req.VehicleID]; !ok {
		fail(w, "Vehicle not found")
		return
	}
	delete(s.vehicles, req.VehicleID)
	writeJSON(w, map[string]any{"success": true, "message": "Vehicle deleted"})
}

func (s *Server) handleAddCar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		fail(w, "Malformed upload")
		return
	}
	year, _ := strconv.Atoi(r.FormValue("year"))
	price, _ := strconv.ParseFloat(r.FormValue("rent_price"), 64)

	imageURL := ""
	if file, header, err := r.FormFile("image"); err == nil {
		file.Close()
		imageURL = "uploads/" + header.Filename
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.allocID()
	s.vehicles[id] = &domain.Vehicle{
		ID:                 id,
		Brand:              r.FormValue("brand"),
		Model:              r.FormValue("model"),
		Year:               year,
		RentPrice:          price,
		AvailabilityStatus: domain.AvailabilityStatus(r.FormValue("availability_status")),
		ImageURL:           imageURL,
	}
	writeJSON(w, map[string]any{"success": true, "message": "Vehicle added"})
}

func (s *Server) handleRentCar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		fail(w, "Malformed request")
		return
	}
	userID, _ := strconv.Atoi(r.PostFormValue("user_id"))
	vehicleID, _ := strconv.Atoi(r.PostFormValue("vehicle_id"))
	totalCost, _ := strconv.ParseFloat(r.PostFormValue("total_cost"), 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[vehicleID]
	if !ok {
		fail(w, "Vehicle not found")
		return
	}
	if v.AvailabilityStatus != domain.StatusAvailable {
		fail(w, "Vehicle is not available")
		return
	}

	id := s.allocID()
	token := fmt.Sprintf("RNT-%d-%s", vehicleID, strings.ToUpper(uuid.NewString()[:8]))
	s.rentals[id] = &rental{
		id:            id,
		userID:        userID,
		vehicleID:     vehicleID,
		startDate:     r.PostFormValue("rental_start_date"),
		endDate:       r.PostFormValue("rental_end_date"),
		totalCost:     totalCost,
		paymentMethod: r.PostFormValue("payment_method"),
		paymentStatus: "Pending",
		carStatus:     "Rented",
		barcode:       token,
	}
	v.AvailabilityStatus = domain.StatusRented

	writeJSON(w, map[string]any{
		"success": true, "message": "Rental created", "rentalId": id, "barcode": token,
	})
}

func (s *Server) handleReturnCar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		fail(w, "Malformed request")
		return
	}
	token := r.PostFormValue("barcode")
	fee, _ := strconv.ParseFloat(r.PostFormValue("additionalFee"), 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rt := range s.rentals {
		if rt.barcode != token {
			continue
		}
		if rt.carStatus == "Returned" {
			fail(w, "Rental already returned")
			return
		}
		rt.carStatus = "Returned"
		rt.paymentStatus = "Paid"
		if v, ok := s.vehicles[rt.vehicleID]; ok {
			v.AvailabilityStatus = domain.StatusAvailable
		}
		pid := s.allocID()
		s.payments[pid] = &payment{
			id:       pid,
			rentalID: rt.id,
			amount:   rt.totalCost + fee,
			method:   rt.paymentMethod,
			date:     rt.endDate,
			status:   "Paid",
			lateFee:  fee,
			total:    rt.totalCost + fee,
		}
		writeJSON(w, map[string]any{"success": true, "message": "Vehicle returned"})
		return
	}
	fail(w, "Barcode not found")
}

func (s *Server) handleAllRecords(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]map[string]any, 0, len(s.rentals))
	for _, rt := range s.rentals {
		name := ""
		if u, ok := s.users[rt.userID]; ok {
			name = u.name
		}
		brand, model := "", ""
		if v, ok := s.vehicles[rt.vehicleID]; ok {
			brand, model = v.Brand, v.Model
		}
		records = append(records, map[string]any{
			"user_name":         name,
			"brand":             brand,
			"model":             model,
			"rental_start_date": rt.startDate,
			"rental_end_date":   rt.endDate,
			"total_cost":        strconv.FormatFloat(rt.totalCost, 'f', 2, 64),
			"payment_status":    rt.paymentStatus,
			"carstatus":         rt.carStatus,
		})
	}
	writeJSON(w, map[string]any{"success": true, "records": records})
}

func (s *Server) handleAllPayments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payments := make([]map[string]any, 0, len(s.payments))
	for _, p := range s.payments {
		payments = append(payments, map[string]any{
			"payment_id":           p.id,
			"rental_id":            p.rentalID,
			"amount_paid":          p.amount,
			"payment_method":       p.method,
			"payment_date":         p.date,
			"pay_status":           p.status,
			"additionalOrLate_fee": p.lateFee,
			"total_cost":           p.total,
		})
	}
	writeJSON(w, map[string]any{"success": true, "payments": payments})
}

func (s *Server) handlePaymentUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get("user_id"))
	if err != nil {
		fail(w, "Invalid user id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data := make([]map[string]any, 0)
	for _, p := range s.payments {
		rt, ok := s.rentals[p.rentalID]
		if !ok || rt.userID != userID {
			continue
		}
		model, brand := "", ""
		if v, ok := s.vehicles[rt.vehicleID]; ok {
			model, brand = v.Model, v.Brand
		}
		data = append(data, map[string]any{
			"payment_id":            p.id,
			"amount_paid":           p.amount,
			"payment_method":        p.method,
			"payment_date":          p.date,
			"pay_status":            p.status,
			"additionalOrLate_fee":  p.lateFee,
			"rental_id":             rt.id,
			"rental_start_date":     rt.startDate,
			"rental_end_date":       rt.endDate,
			"total_cost":            rt.totalCost,
			"rental_payment_status": rt.paymentStatus,
			"rental_status":         rt.carStatus,
			"carstatus":             rt.carStatus,
			"vehicle_model":         model,
			"vehicle_brand":         brand,
		})
	}
	writeJSON(w, map[string]any{"success": true, "data": data})
}

func (s *Server) handleUserWithDocument(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get("user_id"))
	if err != nil {
		fail(w, "Invalid user id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		fail(w, "User not found")
		return
	}
	writeJSON(w, map[string]any{
		"success": true,
		"data": map[string]any{
			"user_id":   u.id,
			"name":      u.name,
			"email":     u.email,
			"phone":     u.phone,
			"address":   u.address,
			"status":    u.status,
			"documents": u.documents,
		},
	})
}
