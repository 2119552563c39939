// Package dto contains Data Transfer Objects for HTTP requests.
//
// Request types bind JSON with gin's `binding` tags. Trimming and length
// rules are applied by the core, so a DTO only guarantees the field was sent.
//
// Naming convention:
//   - Request types: <Resource>Request (e.g., QuestionRequest)
//
// Example:
//
//	var req dto.QuestionRequest
//	if err := c.ShouldBindJSON(&req); err != nil {
//	    response.BadRequest(c, "invalid request body", requestID)
//	    return
//	}
//	id, err := questions.Create(ctx, req.Title, req.Description, req.Category)
package dto
