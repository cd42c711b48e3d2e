package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	baseURL = "http://localhost:8080"
)

const sampleTree = `0 @G1@ INDI
1 NAME John /Smith/
1 BIRT
2 DATE 1850
0 @P1@ INDI
1 NAME Robert /Smith/
0 @P2@ INDI
1 NAME Alice /Smith/
0 @F1@ FAM
1 HUSB @G1@
1 CHIL @P1@
1 CHIL @P2@
0 TRLR
`

const sampleMatches = "Name,Shared cM\nRobert Smith,1700\nAlice Smith,1650\n"

func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	fmt.Println("1. Creating session...")
	var sess struct {
		ID string `json:"id"`
	}
	if !sendRequest("POST", "/sessions", nil, http.StatusCreated, &sess) {
		fail("Create session")
	}
	fmt.Println("PASSED: Create session", sess.ID)

	fmt.Println("2. Uploading tree and matches...")
	if !sendRequest("PUT", "/sessions/"+sess.ID+"/tree", map[string]string{"content": sampleTree}, http.StatusOK, nil) {
		fail("Upload tree")
	}
	if !sendRequest("PUT", "/sessions/"+sess.ID+"/matches", map[string]string{"content": sampleMatches}, http.StatusOK, nil) {
		fail("Upload matches")
	}
	fmt.Println("PASSED: Upload")

	fmt.Println("3. Analyzing...")
	var analysis struct {
		Report struct {
			ConnectionCount int `json:"connectionCount"`
		} `json:"report"`
	}
	if !sendRequest("GET", "/sessions/"+sess.ID+"/analysis?clusters=true", nil, http.StatusOK, &analysis) {
		fail("Analyze")
	}
	if analysis.Report.ConnectionCount != 1 {
		fail(fmt.Sprintf("Analyze: expected 1 connection, got %d", analysis.Report.ConnectionCount))
	}
	fmt.Println("PASSED: Analyze")

	fmt.Println("4. Cleaning up...")
	if !sendRequest("DELETE", "/sessions/"+sess.ID, nil, http.StatusNoContent, nil) {
		fail("Delete session")
	}
	fmt.Println("PASSED: Delete session")
}

func fail(step string) {
	fmt.Println("FAILED:", step)
	os.Exit(1)
}

func sendRequest(method, endpoint string, payload interface{}, wantStatus int, out interface{}) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}

	fmt.Printf("Response: %s\n", string(respBody))
	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			fmt.Printf("Error decoding response: %v\n", err)
			return false
		}
	}
	return true
}
