// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"

	"github.com/TFMV/AddressKey/internal/standardizer"
	"github.com/TFMV/AddressKey/pkg/utils"
)

// NormalizeRequest is the body of POST /v1/normalize and /v1/expand.
type NormalizeRequest struct {
	Address string `json:"address"`
}

// BatchRequest is the body of POST /v1/normalize/batch.
type BatchRequest struct {
	Addresses []string `json:"addresses"`
}

// ContainsRequest is the body of POST /v1/contains.
type ContainsRequest struct {
	A         string `json:"a"`
	B         string `json:"b"`
	MinLength int    `json:"min_length"`
}

// KeyResult pairs an address with its key.
type KeyResult struct {
	Address string `json:"address"`
	Key     string `json:"key"`
}

// ExpandResult lists every key a ranged address expands to.
type ExpandResult struct {
	Address string   `json:"address"`
	Keys    []string `json:"keys"`
}

// ContainsResult reports the outcome of a containment check.
type ContainsResult struct {
	Contained bool `json:"contained"`
}

// MaxBatchAddresses caps the size of a single batch request.
const MaxBatchAddresses = 10000

func NormalizeHandler(std *standardizer.Standardizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NormalizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendError(c, http.StatusBadRequest, eris.Wrap(err, "invalid request body"))
			return
		}

		utils.SendJSON(c, http.StatusOK, "", KeyResult{
			Address: req.Address,
			Key:     std.Normalize(req.Address),
		})
	}
}

func NormalizeBatchHandler(std *standardizer.Standardizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendError(c, http.StatusBadRequest, eris.Wrap(err, "invalid request body"))
			return
		}
		if req.Addresses == nil {
			utils.SendError(c, http.StatusBadRequest, eris.New("addresses is required"))
			return
		}
		if len(req.Addresses) > MaxBatchAddresses {
			utils.SendError(c, http.StatusRequestEntityTooLarge,
				eris.Errorf("batch of %d addresses exceeds limit of %d", len(req.Addresses), MaxBatchAddresses))
			return
		}

		results := make([]KeyResult, len(req.Addresses))
		for i, address := range req.Addresses {
			results[i] = KeyResult{Address: address, Key: std.Normalize(address)}
		}
		utils.SendJSON(c, http.StatusOK, "", results)
	}
}

func ExpandHandler(std *standardizer.Standardizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NormalizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendError(c, http.StatusBadRequest, eris.Wrap(err, "invalid request body"))
			return
		}

		set, err := std.ExpandRange(req.Address)
		switch {
		case eris.Is(err, standardizer.ErrRangeTooLarge):
			utils.SendError(c, http.StatusUnprocessableEntity, err)
			return
		case eris.Is(err, standardizer.ErrInvalidRange):
			utils.SendError(c, http.StatusBadRequest, err)
			return
		case err != nil:
			utils.SendError(c, http.StatusInternalServerError, err)
			return
		}

		utils.SendJSON(c, http.StatusOK, "", ExpandResult{Address: req.Address, Keys: set.Sorted()})
	}
}

func ContainsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContainsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendError(c, http.StatusBadRequest, eris.Wrap(err, "invalid request body"))
			return
		}

		utils.SendJSON(c, http.StatusOK, "", ContainsResult{
			Contained: standardizer.Contained(req.A, req.B, req.MinLength),
		})
	}
}

func HealthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		zuluTime := time.Now().UTC().Format(time.RFC3339)
		c.JSON(http.StatusOK, gin.H{
			"status":   "OK",
			"zuluTime": zuluTime,
		})
	}
}
