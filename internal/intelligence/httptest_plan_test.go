package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bxtheory/examplan/internal/domain"
	"github.com/bxtheory/examplan/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ollamaTestConfig(endpoint string) llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	cfg.Model = "test-model"
	cfg.MaxRetries = 0
	return cfg
}

// TestLLMExtractor_Extract_WithHTTPTestServer exercises the full HTTP
// serialization path: httptest → ollama client → extractor → topic list.
func TestLLMExtractor_Extract_WithHTTPTestServer(t *testing.T) {
	topicsBody := topicsJSON(domain.TopicList{
		CourseName: "Physics 101",
		TotalPages: 240,
		Chapters: []domain.Chapter{
			{Name: "Mechanics", PageCount: 120, Topics: []string{"kinematics", "forces"}, EstimatedComplexity: domain.ComplexityHigh},
			{Name: "Waves", PageCount: 120, EstimatedComplexity: domain.ComplexityMedium},
		},
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"model":    "test-model",
			"response": "Here is the course structure:\n```json\n" + topicsBody + "\n```",
		})
	}))
	defer srv.Close()

	client := llm.NewOllamaClient(ollamaTestConfig(srv.URL), llm.NoopObserver{})
	topics, err := NewLLMExtractor(client).Extract(context.Background(), "physics textbook contents")

	require.NoError(t, err)
	assert.Equal(t, "Physics 101", topics.CourseName)
	require.Len(t, topics.Chapters, 2)
	assert.Equal(t, domain.ComplexityHigh, topics.Chapters[0].EstimatedComplexity)
}

// TestLLMGenerator_Generate_WithHTTPTestServer exercises the schedule path
// end to end, including that the topic list actually reaches the prompt.
func TestLLMGenerator_Generate_WithHTTPTestServer(t *testing.T) {
	planBody := planJSON(domain.FullPlan{
		Plan: []domain.StudyDay{
			{Day: 1, Course: "Physics 101", Chapter: "Mechanics", Task: "Study kinematics", EstimatedHours: 3.0},
			{Day: 2, Course: "Physics 101", Chapter: "Waves", Task: "Study interference", EstimatedHours: 2.5},
		},
		TotalStudyDays: 2,
		TotalHours:     5.5,
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt, _ := req["prompt"].(string)
		assert.Contains(t, prompt, "Physics 101")
		assert.Contains(t, prompt, "Mechanics")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"model":    "test-model",
			"response": planBody,
		})
	}))
	defer srv.Close()

	topics := &domain.TopicList{
		CourseName: "Physics 101",
		TotalPages: 240,
		Chapters: []domain.Chapter{
			{Name: "Mechanics", PageCount: 120, EstimatedComplexity: domain.ComplexityHigh},
			{Name: "Waves", PageCount: 120, EstimatedComplexity: domain.ComplexityMedium},
		},
	}

	client := llm.NewOllamaClient(ollamaTestConfig(srv.URL), llm.NoopObserver{})
	plan, err := NewLLMGenerator(client).Generate(context.Background(), topics, GenerateOptions{})

	require.NoError(t, err)
	require.Len(t, plan.Plan, 2)
	assert.Equal(t, "Mechanics", plan.Plan[0].Chapter)
	assert.InDelta(t, 5.5, plan.TotalHours, 1e-9)
}

// TestLLMGenerator_Generate_ServerErrorSurfaces verifies a failing backend
// produces an error instead of a partial plan.
func TestLLMGenerator_Generate_ServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	topics := &domain.TopicList{
		CourseName: "Physics 101",
		Chapters:   []domain.Chapter{{Name: "Mechanics", PageCount: 100}},
	}

	client := llm.NewOllamaClient(ollamaTestConfig(srv.URL), llm.NoopObserver{})
	_, err := NewLLMGenerator(client).Generate(context.Background(), topics, GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm schedule generation failed")
}
