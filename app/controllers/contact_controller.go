package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/coconina/storefront/app/models"
	"github.com/coconina/storefront/app/services"
	"github.com/coconina/storefront/pkg/bind"
	"github.com/coconina/storefront/pkg/logger"
	"github.com/coconina/storefront/pkg/response"
)

// ContactSubmitter relays inquiries to the brand's API.
type ContactSubmitter interface {
	SubmitContact(ctx context.Context, form models.ContactForm) (models.ContactResult, error)
}

type ContactController struct {
	submitter ContactSubmitter
}

func NewContactController(s ContactSubmitter) *ContactController {
	return &ContactController{submitter: s}
}

// Submit handles POST /api/contact.
func (c *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	var form models.ContactForm
	errs, err := bind.JSON(w, r, &form)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	res, err := c.submitter.SubmitContact(r.Context(), form)
	if err != nil {
		var se *services.SubmitError
		if errors.As(err, &se) {
			response.BadGateway(w, se.Message)
			return
		}
		logger.WithCtx(r.Context()).Error("contact relay failed", "error", err)
		response.BadGateway(w, "We could not send your message. Please try again or reach us on WhatsApp.")
		return
	}

	response.Message(w, http.StatusOK, res.Message, res)
}
