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
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TFMV/AddressKey/internal/standardizer"
)

// SetupRoutes registers middleware and every endpoint on router.
func SetupRoutes(router *gin.Engine, std *standardizer.Standardizer, logger *zap.Logger) {
	router.Use(RequestLogger(logger), ErrorHandler(logger))

	router.GET("/health", HealthCheckHandler())

	v1 := router.Group("/v1")
	v1.POST("/normalize", NormalizeHandler(std))
	v1.POST("/normalize/batch", NormalizeBatchHandler(std))
	v1.POST("/expand", ExpandHandler(std))
	v1.POST("/contains", ContainsHandler())
}
