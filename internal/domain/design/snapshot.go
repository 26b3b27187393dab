package design

import (
	"fmt"
	"time"

	"github.com/PolishedStudio01/salon-scheduler/internal/models"
)

// DesignUnavailableError aborts order creation when the referenced design
// is gone or no longer offered.
type DesignUnavailableError struct {
	DesignID uint
}

func (e *DesignUnavailableError) Error() string {
	return fmt.Sprintf("design %d unavailable", e.DesignID)
}

// BuildSnapshot copies the design's presentational fields into a frozen
// record owned by the order. Prices deliberately stay out of the snapshot;
// the negotiated price lives on the order itself.
func BuildSnapshot(d *models.Design, author *models.User, now time.Time) (*models.DesignSnapshot, error) {
	if d == nil || !d.Active {
		var id uint
		if d != nil {
			id = d.ID
		}
		return nil, &DesignUnavailableError{DesignID: id}
	}

	authorName := ""
	if author != nil {
		authorName = author.Name
	}

	originalID := d.ID
	return &models.DesignSnapshot{
		Title:            d.Title,
		Description:      d.Description,
		ImageURL:         d.ImageURL,
		VideoURL:         d.VideoURL,
		Type:             d.Type,
		Source:           d.Source,
		Tags:             d.Tags,
		Color:            d.Color,
		OriginalDesignID: &originalID,
		AuthorID:         d.AuthorID,
		AuthorName:       authorName,
		CreatedAt:        now,
	}, nil
}

// ResolveSurcharge picks the design surcharge applied on top of the service
// price. Precedence: per-service option, then the service default, then the
// design's own advertised price. Absent all three the design is free.
func ResolveSurcharge(
	option *models.ServiceDesignOption,
	service *models.MasterService,
	d *models.Design,
) float64 {
	if option != nil {
		return option.Surcharge
	}
	if service != nil && service.DesignSurcharge != nil {
		return *service.DesignSurcharge
	}
	if d != nil && d.Price != nil {
		return *d.Price
	}
	return 0
}
