package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/api"
)

var _ = Describe("Server", func() {
	var router http.Handler

	BeforeEach(func() {
		router = api.NewServer().Router()
	})

	post := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(
			http.MethodPost, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	decode := func(w *httptest.ResponseRecorder) map[string]any {
		var body map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		return body
	}

	configureBody := `{
		"size": "16B",
		"blockSize": "4B",
		"associativity": 2,
		"policy": "LRU"
	}`

	Describe("configure", func() {
		It("should build a cache and report its topology", func() {
			w := post("/api/configure", configureBody)

			Expect(w.Code).To(Equal(http.StatusOK))
			body := decode(w)
			Expect(body["success"]).To(BeTrue())

			config := body["config"].(map[string]any)
			Expect(config["numSets"]).To(BeNumerically("==", 2))
			Expect(config["waysPerSet"]).To(BeNumerically("==", 2))
			Expect(config["blockSize"]).To(BeNumerically("==", 4))
		})

		It("should accept the fully-associative sentinel string", func() {
			w := post("/api/configure", `{
				"size": "8B",
				"blockSize": "4B",
				"associativity": "fully",
				"policy": "FIFO"
			}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			config := decode(w)["config"].(map[string]any)
			Expect(config["numSets"]).To(BeNumerically("==", 1))
			Expect(config["waysPerSet"]).To(BeNumerically("==", 2))
		})

		It("should reject a malformed body", func() {
			w := post("/api/configure", "not json")

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["success"]).To(BeFalse())
		})

		It("should reject a bad size", func() {
			w := post("/api/configure", `{
				"size": "huge",
				"blockSize": "4B",
				"associativity": 1,
				"policy": "LRU"
			}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject an invalid topology", func() {
			w := post("/api/configure", `{
				"size": "10",
				"blockSize": "4",
				"associativity": 1,
				"policy": "LRU"
			}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject an unknown policy", func() {
			w := post("/api/configure", `{
				"size": "16B",
				"blockSize": "4B",
				"associativity": 2,
				"policy": "RANDOM"
			}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should keep the previous cache after a failed configure", func() {
			Expect(post("/api/configure", configureBody).Code).
				To(Equal(http.StatusOK))
			post("/api/access", `{"address": 0}`)

			w := post("/api/configure", `{
				"size": "10",
				"blockSize": "4",
				"associativity": 1,
				"policy": "LRU"
			}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))

			stats := decode(get("/api/stats"))["stats"].(map[string]any)
			Expect(stats["totalAccesses"]).To(BeNumerically("==", 1))
		})
	})

	Describe("access", func() {
		It("should require configuration first", func() {
			w := post("/api/access", `{"address": 0}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["error"]).To(Equal("Cache not configured"))
		})

		It("should report hits, misses, and state", func() {
			post("/api/configure", configureBody)

			w := post("/api/access", `{"address": 0}`)
			Expect(w.Code).To(Equal(http.StatusOK))
			result := decode(w)["result"].(map[string]any)
			Expect(result["hit"]).To(BeFalse())
			Expect(result["evicted"]).To(BeNil())

			w = post("/api/access", `{"address": 0}`)
			result = decode(w)["result"].(map[string]any)
			Expect(result["hit"]).To(BeTrue())

			state := result["state"].(map[string]any)
			Expect(state["sets"]).To(HaveLen(2))
		})

		It("should report the evicted block", func() {
			post("/api/configure", `{
				"size": "8B",
				"blockSize": "4B",
				"associativity": "fully",
				"policy": "LRU"
			}`)

			post("/api/access", `{"address": 0}`)
			post("/api/access", `{"address": 4}`)
			w := post("/api/access", `{"address": 8}`)

			result := decode(w)["result"].(map[string]any)
			evicted := result["evicted"].(map[string]any)
			Expect(evicted["tag"]).To(BeNumerically("==", 0))
		})

		It("should accept a string address", func() {
			post("/api/configure", configureBody)

			w := post("/api/access", `{"address": "0x8"}`)
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("should reject a malformed address", func() {
			post("/api/configure", configureBody)

			w := post("/api/access", `{"address": "ten"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should mark write accesses dirty", func() {
			post("/api/configure", configureBody)

			w := post("/api/access", `{"address": 0, "isWrite": true}`)
			result := decode(w)["result"].(map[string]any)
			state := result["state"].(map[string]any)
			sets := state["sets"].([]any)
			blocks := sets[0].(map[string]any)["blocks"].([]any)
			Expect(blocks[0].(map[string]any)["dirty"]).To(BeTrue())
		})
	})

	Describe("state and stats", func() {
		It("should require configuration first", func() {
			Expect(get("/api/state").Code).To(Equal(http.StatusBadRequest))
			Expect(get("/api/stats").Code).To(Equal(http.StatusBadRequest))
		})

		It("should report statistics with web-facing keys", func() {
			post("/api/configure", configureBody)
			post("/api/access", `{"address": 0}`)
			post("/api/access", `{"address": 0}`)

			stats := decode(get("/api/stats"))["stats"].(map[string]any)
			Expect(stats["totalAccesses"]).To(BeNumerically("==", 2))
			Expect(stats["hits"]).To(BeNumerically("==", 1))
			Expect(stats["misses"]).To(BeNumerically("==", 1))
			Expect(stats["hitRate"]).To(BeNumerically("==", 0.5))
			Expect(stats["missRate"]).To(BeNumerically("==", 0.5))
		})
	})

	Describe("reset", func() {
		It("should drop the cache until reconfigured", func() {
			post("/api/configure", configureBody)
			Expect(get("/api/state").Code).To(Equal(http.StatusOK))

			w := post("/api/reset", "")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["success"]).To(BeTrue())

			Expect(get("/api/state").Code).To(Equal(http.StatusBadRequest))

			Expect(post("/api/configure", configureBody).Code).
				To(Equal(http.StatusOK))
			Expect(get("/api/state").Code).To(Equal(http.StatusOK))
		})
	})

	Describe("CORS", func() {
		It("should set permissive CORS headers", func() {
			w := get("/api/stats")
			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		})

		It("should short-circuit preflight requests", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/configure", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		})
	})
})
