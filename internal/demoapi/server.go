package demoapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/five82/nimbus/internal/weatherapi"
)

// MaxFavorites caps the saved places.
const MaxFavorites = 10

// Server is an in-memory weather collaborator speaking the same HTTP
// contract as the real backend.
type Server struct {
	cities []City
	now    func() time.Time
	log    *zap.SugaredLogger

	mu        sync.Mutex
	favorites []weatherapi.Favorite
}

// Option configures a Server.
type Option func(*Server)

// WithCities replaces the built-in gazetteer.
func WithCities(cities []City) Option {
	return func(s *Server) { s.cities = cities }
}

// WithClock fixes the time used for forecasts.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// NewServer returns a server with the default cities and no favorites.
func NewServer(opts ...Option) *Server {
	s := &Server{
		cities: DefaultCities,
		now:    time.Now,
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterRoutes mounts the collaborator endpoints on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/autocomplete", s.handleAutocomplete)
	r.Get("/place_details", s.handlePlaceDetails)
	r.Route("/weather", func(r chi.Router) {
		r.Get("/current", s.handleWeather(currentPayload))
		r.Get("/daily", s.handleWeather(dailyPayload))
		r.Get("/hourly", s.handleWeather(hourlyPayload))
	})
	r.Route("/favorites", func(r chi.Router) {
		r.Get("/get", s.handleFavorites)
		r.Post("/set", s.handleAddFavorite)
		r.Post("/delete", s.handleRemoveFavorite)
	})
	r.Get("/icon", s.handleIcon)
}

// Handler returns the full router with middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.RegisterRoutes(r)
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debugw("demo request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// param returns a required query parameter, writing the error itself when
// it is missing.
func param(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		writeError(w, http.StatusBadRequest, "Missing "+name)
		return "", false
	}
	return v, true
}

func floatParam(w http.ResponseWriter, r *http.Request, name string) (float64, bool) {
	raw, ok := param(w, r, name)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return v, true
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	query, ok := param(w, r, "query")
	if !ok {
		return
	}
	matches := search(s.cities, query)
	resp := weatherapi.AutocompleteResponse{
		Predictions: make([]weatherapi.Suggestion, 0, len(matches)),
		Status:      "OK",
	}
	for _, c := range matches {
		resp.Predictions = append(resp.Predictions, weatherapi.Suggestion{PlaceID: c.PlaceID, Description: c.Address})
	}
	if len(matches) == 0 {
		resp.Status = "ZERO_RESULTS"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePlaceDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := param(w, r, "place_id")
	if !ok {
		return
	}
	c, found := byPlaceID(s.cities, id)
	if !found {
		writeError(w, http.StatusBadRequest, "NOT_FOUND")
		return
	}
	lat, lng := c.Lat, c.Lng
	writeJSON(w, http.StatusOK, weatherapi.PlaceDetails{
		Name:    c.Name,
		Address: c.Address,
		Geometry: weatherapi.Geometry{
			Location: weatherapi.Location{Lat: &lat, Lng: &lng},
		},
	})
}

func (s *Server) handleWeather(build func(City, time.Time) object) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat, ok := floatParam(w, r, "lat")
		if !ok {
			return
		}
		lng, ok := floatParam(w, r, "lng")
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, build(nearest(s.cities, lat, lng), s.now()))
	}
}

func (s *Server) handleFavorites(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Favorites())
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := param(w, r, "place_id")
	if !ok {
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if err := s.AddFavorite(id, name); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := param(w, r, "place_id")
	if !ok {
		return
	}
	s.RemoveFavorite(id)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

var iconName = regexp.MustCompile(`^[a-z_]+$`)

func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	name, ok := param(w, r, "icon")
	if !ok {
		return
	}
	if !iconName.MatchString(name) {
		writeError(w, http.StatusNotFound, "Unknown icon")
		return
	}
	fg := "#202020"
	if r.URL.Query().Get("dark") == "true" {
		fg = "#f0f0f0"
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64"><title>%s</title><text x="4" y="36" fill="%s">%s</text></svg>`, name, fg, name)
}

// ErrFavoritesFull is returned once MaxFavorites places are saved.
var ErrFavoritesFull = fmt.Errorf("Maximum %d favorites allowed", MaxFavorites)

// Favorites returns a copy of the saved places in insertion order.
func (s *Server) Favorites() []weatherapi.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]weatherapi.Favorite, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// AddFavorite saves a place. Saving a place twice is a no-op; an empty
// name falls back to the gazetteer name, then the id.
func (s *Server) AddFavorite(placeID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.favorites {
		if f.PlaceID == placeID {
			return nil
		}
	}
	if len(s.favorites) >= MaxFavorites {
		return ErrFavoritesFull
	}
	if name == "" {
		if c, ok := byPlaceID(s.cities, placeID); ok {
			name = c.Name
		} else {
			name = placeID
		}
	}
	s.favorites = append(s.favorites, weatherapi.Favorite{PlaceID: placeID, Name: name})
	return nil
}

// RemoveFavorite deletes a saved place; unknown ids are ignored.
func (s *Server) RemoveFavorite(placeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.favorites[:0]
	for _, f := range s.favorites {
		if f.PlaceID != placeID {
			kept = append(kept, f)
		}
	}
	s.favorites = kept
}

// Start serves the demo collaborator on addr (use "127.0.0.1:0" for an
// ephemeral port) until ctx is cancelled. It returns the base URL.
func Start(ctx context.Context, addr string, s *Server) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorw("demo server stopped", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	s.log.Infow("demo collaborator listening", "addr", ln.Addr().String())
	return "http://" + ln.Addr().String(), nil
}
