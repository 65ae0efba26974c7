package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/api/types"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/db"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device"
	"github.com/useful-esp8266-lib/Esp32TCPLightController/pkg/device/schema"
)

// fakeController records sent commands instead of talking to hardware
type fakeController struct {
	mu         sync.Mutex
	connected  bool
	endpoint   string
	welcome    string
	connectErr error
	sent       []device.Command
	states     []device.LightState
}

func (f *fakeController) Connect(ctx context.Context, host string, port int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.connectErr != nil {
		return "", f.connectErr
	}
	if f.connected {
		return "", device.ErrAlreadyConnected
	}
	f.connected = true
	return f.welcome, nil
}

func (f *fakeController) ConnectSerial(ctx context.Context, portPath string, baud int) (string, error) {
	return f.Connect(ctx, portPath, 0)
}

func (f *fakeController) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
}

func (f *fakeController) Send(cmd device.Command) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected {
		return false
	}
	f.sent = append(f.sent, cmd)
	return true
}

func (f *fakeController) Status() device.ConnStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.connected {
		return device.StatusConnected
	}
	return device.StatusDisconnected
}

func (f *fakeController) Endpoint() string { return f.endpoint }

func (f *fakeController) IsConnected() bool { return f.Status() == device.StatusConnected }

func (f *fakeController) LightStates() []device.LightState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]device.LightState(nil), f.states...)
}

func (f *fakeController) lastSent(t *testing.T) device.Command {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		t.Fatal("no command was sent")
	}
	return f.sent[len(f.sent)-1]
}

// fakeLightStore serves a fixed roster from memory
type fakeLightStore struct {
	lights []device.Light
}

func (f *fakeLightStore) List(ctx context.Context, profileID int64) ([]device.Light, error) {
	return f.lights, nil
}

func (f *fakeLightStore) Replace(ctx context.Context, profileID int64, lights []device.Light) error {
	f.lights = lights
	return nil
}

func (f *fakeLightStore) Rename(ctx context.Context, profileID int64, id, displayName string) error {
	for i := range f.lights {
		if f.lights[i].ID == id {
			f.lights[i].DisplayName = displayName
			return nil
		}
	}
	return device.ErrNotFound
}

var testRoster = []device.Light{
	{ID: "builtin", DisplayName: "Built-in LED", Position: 0},
	{ID: "light1", DisplayName: "Light 1", Position: 1},
}

func newLightsEngine(ctrl *fakeController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewLightsHandler(ctrl, &fakeLightStore{lights: testRoster}, schema.NewValidator(), 1)

	engine := gin.New()
	engine.GET("/lights", h.ListLights)
	engine.GET("/lights/:id", h.GetLight)
	engine.PATCH("/lights/:id", h.RenameLight)
	engine.POST("/lights/state", h.SetAllLights)
	engine.POST("/lights/:id/state", h.SetLightState)
	engine.POST("/refresh", h.Refresh)
	return engine
}

func doRequest(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := &fakeController{connected: true}
	h := NewHealthHandler(ctrl)
	engine := gin.New()
	engine.GET("/health", h.Health)

	w := doRequest(engine, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 while connected, got %d", w.Code)
	}

	ctrl.Disconnect()
	w = doRequest(engine, http.MethodGet, "/health", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 while disconnected, got %d", w.Code)
	}
}

func TestListLights_MergesStates(t *testing.T) {
	ctrl := &fakeController{
		connected: true,
		states: []device.LightState{
			{ID: "builtin", On: false},
			{ID: "light1", On: true},
		},
	}
	engine := newLightsEngine(ctrl)

	w := doRequest(engine, http.MethodGet, "/lights", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp types.ListLightsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 lights, got %d", resp.Count)
	}
	if resp.Lights[0].DisplayName != "Built-in LED" || resp.Lights[0].On {
		t.Errorf("unexpected first light %+v", resp.Lights[0])
	}
	if resp.Lights[1].ID != "light1" || !resp.Lights[1].On {
		t.Errorf("unexpected second light %+v", resp.Lights[1])
	}
}

func TestGetLight_NotFound(t *testing.T) {
	engine := newLightsEngine(&fakeController{})

	w := doRequest(engine, http.MethodGet, "/lights/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSetLightState_SendsCommand(t *testing.T) {
	ctrl := &fakeController{connected: true}
	engine := newLightsEngine(ctrl)

	w := doRequest(engine, http.MethodPost, "/lights/light1/state", map[string]any{"state": "ON"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	cmd := ctrl.lastSent(t)
	if cmd.Op != device.OpOn || cmd.LightID != "light1" {
		t.Errorf("unexpected command %+v", cmd)
	}
}

func TestSetLightState_Toggle(t *testing.T) {
	ctrl := &fakeController{connected: true}
	engine := newLightsEngine(ctrl)

	w := doRequest(engine, http.MethodPost, "/lights/builtin/state", map[string]any{"state": "TOGGLE"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	cmd := ctrl.lastSent(t)
	if cmd.Op != device.OpToggle || cmd.LightID != "builtin" {
		t.Errorf("unexpected command %+v", cmd)
	}
}

func TestSetLightState_InvalidState(t *testing.T) {
	ctrl := &fakeController{connected: true}
	engine := newLightsEngine(ctrl)

	w := doRequest(engine, http.MethodPost, "/lights/light1/state", map[string]any{"state": "BLINK"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSetLightState_UnknownLight(t *testing.T) {
	ctrl := &fakeController{connected: true}
	engine := newLightsEngine(ctrl)

	w := doRequest(engine, http.MethodPost, "/lights/nope/state", map[string]any{"state": "ON"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSetLightState_NotConnected(t *testing.T) {
	engine := newLightsEngine(&fakeController{})

	w := doRequest(engine, http.MethodPost, "/lights/light1/state", map[string]any{"state": "ON"})
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestSetAllLights(t *testing.T) {
	ctrl := &fakeController{connected: true}
	engine := newLightsEngine(ctrl)

	w := doRequest(engine, http.MethodPost, "/lights/state", map[string]any{"state": "OFF"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cmd := ctrl.lastSent(t); cmd.Op != device.OpAllOff {
		t.Errorf("unexpected command %+v", cmd)
	}

	w = doRequest(engine, http.MethodPost, "/lights/state", map[string]any{"state": "ON"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cmd := ctrl.lastSent(t); cmd.Op != device.OpAllOn {
		t.Errorf("unexpected command %+v", cmd)
	}
}

func TestSetAllLights_RejectsToggle(t *testing.T) {
	ctrl := &fakeController{connected: true}
	engine := newLightsEngine(ctrl)

	w := doRequest(engine, http.MethodPost, "/lights/state", map[string]any{"state": "TOGGLE"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRefresh(t *testing.T) {
	ctrl := &fakeController{connected: true}
	engine := newLightsEngine(ctrl)

	w := doRequest(engine, http.MethodPost, "/refresh", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cmd := ctrl.lastSent(t); cmd.Op != device.OpStatus {
		t.Errorf("unexpected command %+v", cmd)
	}

	var resp types.CommandResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Command != "STATUS" || !resp.Sent {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestRenameLight(t *testing.T) {
	engine := newLightsEngine(&fakeController{})

	w := doRequest(engine, http.MethodPatch, "/lights/light1", types.RenameLightRequest{DisplayName: "Desk Lamp"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp types.LightResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Light.DisplayName != "Desk Lamp" {
		t.Errorf("unexpected light %+v", resp.Light)
	}

	w = doRequest(engine, http.MethodPatch, "/lights/nope", types.RenameLightRequest{DisplayName: "x"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// fakeDeviceStore backs the connection handler without SQLite
type fakeDeviceStore struct {
	devices map[int64]*db.Device
	def     *db.Device
}

func (f *fakeDeviceStore) Get(ctx context.Context, id int64) (*db.Device, error) {
	if d, ok := f.devices[id]; ok {
		return d, nil
	}
	return nil, db.ErrDeviceNotFound
}

func (f *fakeDeviceStore) GetDefault(ctx context.Context, profileID int64) (*db.Device, error) {
	if f.def == nil {
		return nil, db.ErrDeviceNotFound
	}
	return f.def, nil
}

func (f *fakeDeviceStore) List(ctx context.Context, profileID int64) ([]*db.Device, error) {
	var out []*db.Device
	for _, d := range f.devices {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDeviceStore) Create(ctx context.Context, d *db.Device) error {
	if f.devices == nil {
		f.devices = make(map[int64]*db.Device)
	}
	d.ID = int64(len(f.devices) + 1)
	f.devices[d.ID] = d
	return nil
}

func (f *fakeDeviceStore) Update(ctx context.Context, d *db.Device) error { return nil }

func (f *fakeDeviceStore) SetDefault(ctx context.Context, id int64) error {
	f.def = f.devices[id]
	return nil
}

func (f *fakeDeviceStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.devices[id]; !ok {
		return db.ErrDeviceNotFound
	}
	delete(f.devices, id)
	return nil
}

func newConnectionEngine(ctrl *fakeController, store db.DeviceStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewConnectionHandler(ctrl, store, 1)

	engine := gin.New()
	engine.GET("/connection", h.GetConnection)
	engine.POST("/connection", h.Connect)
	engine.DELETE("/connection", h.Disconnect)
	return engine
}

func TestConnect_ExplicitHost(t *testing.T) {
	ctrl := &fakeController{welcome: "ESP32 Light Controller ready"}
	engine := newConnectionEngine(ctrl, &fakeDeviceStore{})

	w := doRequest(engine, http.MethodPost, "/connection", types.ConnectRequest{Host: "10.0.0.9", Port: 8080})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp types.ConnectionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != string(device.StatusConnected) {
		t.Errorf("unexpected status %q", resp.Status)
	}
	if resp.Welcome != "ESP32 Light Controller ready" {
		t.Errorf("unexpected welcome %q", resp.Welcome)
	}
}

func TestConnect_AlreadyConnected(t *testing.T) {
	ctrl := &fakeController{connected: true}
	engine := newConnectionEngine(ctrl, &fakeDeviceStore{})

	w := doRequest(engine, http.MethodPost, "/connection", types.ConnectRequest{Host: "10.0.0.9"})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestConnect_NoEndpoint(t *testing.T) {
	engine := newConnectionEngine(&fakeController{}, &fakeDeviceStore{})

	w := doRequest(engine, http.MethodPost, "/connection", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestConnect_SavedDeviceNotFound(t *testing.T) {
	engine := newConnectionEngine(&fakeController{}, &fakeDeviceStore{})

	w := doRequest(engine, http.MethodPost, "/connection", types.ConnectRequest{DeviceID: 42})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	ctrl := &fakeController{connectErr: device.ErrConnect}
	engine := newConnectionEngine(ctrl, &fakeDeviceStore{})

	w := doRequest(engine, http.MethodPost, "/connection", types.ConnectRequest{Host: "10.0.0.9"})
	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}

func TestDisconnect(t *testing.T) {
	ctrl := &fakeController{connected: true}
	engine := newConnectionEngine(ctrl, &fakeDeviceStore{})

	w := doRequest(engine, http.MethodDelete, "/connection", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ctrl.IsConnected() {
		t.Error("controller still connected")
	}
}
