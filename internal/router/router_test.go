package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"front-desk/internal/router"
)

type caller struct {
	userID string
	role   string
	dest   string // id de oficina, vacío = sin destino
	name   string
}

var (
	reception = caller{userID: "u-reception", role: "receptionist", name: "Front Desk"}
	staffA    = caller{userID: "u-staff-a", role: "staff", dest: "2", name: "Kwame"}
	staffB    = caller{userID: "u-staff-b", role: "staff", dest: "3", name: "Abena"}
	accounts  = caller{userID: "u-staff-c", role: "staff", dest: "4", name: "Ama"}
	admin     = caller{userID: "u-admin", role: "admin", name: "Root"}
	nobody    = caller{}
)

func TestHTTP_EndToEnd_VisitLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// 1) Recepción registra la visita con destino Office A (2)
	visitID := createVisit(t, ts.URL, reception, map[string]any{
		"name":                "Jane Doe",
		"purpose":             "Meeting",
		"telephone":           "0551234567",
		"initial_destination": 2,
	})

	// 2) Sin identidad => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/visits", nobody, nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without identity, got %d", st)
		}
	}

	// 3) Staff de OTRA oficina no puede recibirla
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/visits/"+visitID+"/receive", staffB, map[string]any{
			"received_by": "Abena",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for wrong office, got %d", st)
		}
	}

	// 4) La cola de Office A la incluye; la de Office B no
	{
		st, body := doReq(t, ts.URL, "GET", "/visits/office", staffA, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 office queue, got %d body=%s", st, string(body))
		}
		if got := pageTotal(t, body); got != 1 {
			t.Fatalf("expected 1 visit in office A queue, got %d", got)
		}
	}
	{
		_, body := doReq(t, ts.URL, "GET", "/visits/office", staffB, nil)
		if got := pageTotal(t, body); got != 0 {
			t.Fatalf("expected empty office B queue, got %d", got)
		}
	}

	// 5) Office A redirige a Accounts (4)
	{
		st, body := doReq(t, ts.URL, "PATCH", "/visits/"+visitID+"/receive", staffA, map[string]any{
			"received_by":      "Kwame",
			"next_destination": 4,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 redirect, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "pending" {
			t.Fatalf("redirect must keep pending, got %q", resp.Status)
		}
	}

	// 6) El detalle trae el historial con acciones derivadas
	{
		st, body := doReq(t, ts.URL, "GET", "/visits/"+visitID, staffA, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 detail, got %d body=%s", st, string(body))
		}
		var resp struct {
			Data struct {
				Status               string `json:"status"`
				CurrentDestinationID *int64 `json:"current_destination_id"`
				History              []struct {
					Action string `json:"action"`
				} `json:"history"`
			} `json:"data"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal detail: %v", err)
		}
		if resp.Data.CurrentDestinationID == nil || *resp.Data.CurrentDestinationID != 4 {
			t.Fatalf("expected current destination 4, got %v", resp.Data.CurrentDestinationID)
		}
		if len(resp.Data.History) != 2 {
			t.Fatalf("expected 2 history entries, got %d", len(resp.Data.History))
		}
		if resp.Data.History[0].Action != "registered" || resp.Data.History[1].Action != "redirected" {
			t.Fatalf("unexpected derived actions: %+v", resp.Data.History)
		}
	}

	// 7) Accounts completa la visita
	{
		st, body := doReq(t, ts.URL, "PATCH", "/visits/"+visitID+"/receive", accounts, map[string]any{
			"received_by": "Ama",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 complete, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "completed" {
			t.Fatalf("expected completed, got %q", resp.Status)
		}
	}

	// 8) Una visita completada no se vuelve a recibir, ni por admin
	{
		st, body := doReq(t, ts.URL, "PATCH", "/visits/"+visitID+"/receive", admin, map[string]any{
			"received_by": "Root",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on completed visit, got %d body=%s", st, string(body))
		}
		var resp struct {
			Kind string `json:"kind"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Kind != "invalid_state" {
			t.Fatalf("expected kind invalid_state, got %q", resp.Kind)
		}
	}

	// 9) Filtro por estado
	{
		_, body := doReq(t, ts.URL, "GET", "/visits?status=completed", reception, nil)
		if got := pageTotal(t, body); got != 1 {
			t.Fatalf("expected 1 completed visit, got %d", got)
		}
	}

	// 10) Stats del día reflejan la visita completada
	{
		st, body := doReq(t, ts.URL, "GET", "/stats", reception, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 stats, got %d body=%s", st, string(body))
		}
		var resp struct {
			Total     int `json:"total"`
			Pending   int `json:"pending"`
			Completed int `json:"completed"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Total != 1 || resp.Completed != 1 || resp.Pending != 0 {
			t.Fatalf("unexpected stats: %+v", resp)
		}
	}

	// 11) Stats por oficina: staff clavado a la suya, admin elige
	{
		st, _ := doReq(t, ts.URL, "GET", "/stats/office?destination_id=4", staffA, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for staff override, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/stats/office?destination_id=4", admin, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 admin office stats, got %d body=%s", st, string(body))
		}
		var resp struct {
			Total int `json:"total"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Total != 1 {
			t.Fatalf("expected 1 visit currently at accounts, got %d", resp.Total)
		}
	}

	// 12) Catálogo de destinos sembrado
	{
		st, body := doReq(t, ts.URL, "GET", "/destinations", reception, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 destinations, got %d body=%s", st, string(body))
		}
		var resp struct {
			Data []struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			} `json:"data"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Data) != 5 {
			t.Fatalf("expected 5 seeded destinations, got %d", len(resp.Data))
		}
	}
}

func TestHTTP_CreateVisit_Rules(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// staff no registra visitas
	{
		st, _ := doReq(t, ts.URL, "POST", "/visits", staffA, map[string]any{
			"name":      "Jane Doe",
			"purpose":   "Meeting",
			"telephone": "0551234567",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for staff create, got %d", st)
		}
	}

	// destino inexistente => invalid_reference, sin fila creada
	{
		st, body := doReq(t, ts.URL, "POST", "/visits", reception, map[string]any{
			"name":                "Jane Doe",
			"purpose":             "Meeting",
			"telephone":           "0551234567",
			"initial_destination": 999,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown destination, got %d body=%s", st, string(body))
		}
		var resp struct {
			Kind string `json:"kind"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Kind != "invalid_reference" {
			t.Fatalf("expected kind invalid_reference, got %q", resp.Kind)
		}

		_, listBody := doReq(t, ts.URL, "GET", "/visits", reception, nil)
		if got := pageTotal(t, listBody); got != 0 {
			t.Fatalf("expected no visit created, got %d", got)
		}
	}

	// teléfono con guiones => invalid_input
	{
		st, _ := doReq(t, ts.URL, "POST", "/visits", reception, map[string]any{
			"name":      "Jane Doe",
			"purpose":   "Meeting",
			"telephone": "055-123-4567",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad telephone, got %d", st)
		}
	}
}

func TestHTTP_List_PaginationEnvelope(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	for _, name := range []string{"Jane Doe", "John Mensah", "Yaw Boateng"} {
		createVisit(t, ts.URL, reception, map[string]any{
			"name":      name,
			"purpose":   "Meeting",
			"telephone": "0551234567",
		})
	}

	_, body := doReq(t, ts.URL, "GET", "/visits?limit=2", reception, nil)

	var resp struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			Limit  int `json:"limit"`
			Offset int `json:"offset"`
			Total  int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal page: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(resp.Data))
	}
	if resp.Pagination.Limit != 2 || resp.Pagination.Offset != 0 || resp.Pagination.Total != 3 {
		t.Fatalf("unexpected pagination envelope: %+v", resp.Pagination)
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	res, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", res.StatusCode)
	}
}

func createVisit(t *testing.T, baseURL string, c caller, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/visits", c, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create visit, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create visit: missing id body=%s", string(body))
	}
	return resp.ID
}

func pageTotal(t *testing.T, body []byte) int {
	t.Helper()

	var resp struct {
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal pagination: %v body=%s", err, string(body))
	}
	return resp.Pagination.Total
}

func doReq(t *testing.T, baseURL, method, path string, c caller, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		req.Header.Set("X-Debug-User-ID", c.userID)
		req.Header.Set("X-Debug-Role", c.role)
		req.Header.Set("X-Debug-Name", c.name)
		if c.dest != "" {
			req.Header.Set("X-Debug-Destination-ID", c.dest)
		}
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
