package patch

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/bizdex/internal/domain/business"
)

// MaxImages caps the image list of a single record.
const MaxImages = 20

// Patch is a partial business update. Nil fields are unchanged.
// Derived fields (distance, score) have no representation here.
type Patch struct {
	Name        *string
	Category    *string
	CategoryID  *string
	Description *string
	City        *string
	Address     *string
	Lat         *float64
	Lng         *float64
	IsVerified  *bool
	IsFeatured  *bool
	IsPremium   *bool
	IsRemote    *bool
	Rating      *float64
	ReviewCount *int
	Years       *int
	Images      *[]string
	Phone       *string
	Email       *string
	Website     *string
}

// Validate checks that at least one field is set and values are in range.
func (p *Patch) Validate() error {
	if p.IsEmpty() {
		return fmt.Errorf("at least one field must be provided")
	}
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > business.MaxRating) {
		return fmt.Errorf("rating must be between 0 and %g", business.MaxRating)
	}
	if p.ReviewCount != nil && *p.ReviewCount < 0 {
		return fmt.Errorf("reviewCount must be non-negative")
	}
	if p.Years != nil && *p.Years < 0 {
		return fmt.Errorf("yearsOfExperience must be non-negative")
	}
	if p.Images != nil && len(*p.Images) > MaxImages {
		return fmt.Errorf("too many images (max %d)", MaxImages)
	}
	if (p.Lat == nil) != (p.Lng == nil) {
		return fmt.Errorf("lat and lng must be updated together")
	}
	return nil
}

// IsEmpty reports whether no field is set.
func (p *Patch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.CategoryID == nil &&
		p.Description == nil && p.City == nil && p.Address == nil &&
		p.Lat == nil && p.Lng == nil &&
		p.IsVerified == nil && p.IsFeatured == nil && p.IsPremium == nil && p.IsRemote == nil &&
		p.Rating == nil && p.ReviewCount == nil && p.Years == nil && p.Images == nil &&
		p.Phone == nil && p.Email == nil && p.Website == nil
}

// Apply returns b with the patch applied and UpdatedAt set to now.
func (p *Patch) Apply(b business.Business, now time.Time) business.Business {
	out := b.WithoutDerived()
	setString(&out.Name, p.Name)
	setString(&out.Category, p.Category)
	setString(&out.CategoryID, p.CategoryID)
	setString(&out.Description, p.Description)
	setString(&out.City, p.City)
	setString(&out.Address, p.Address)
	setString(&out.Phone, p.Phone)
	setString(&out.Email, p.Email)
	setString(&out.Website, p.Website)
	if p.Lat != nil {
		out.Lat = *p.Lat
	}
	if p.Lng != nil {
		out.Lng = *p.Lng
	}
	setBool(&out.IsVerified, p.IsVerified)
	setBool(&out.IsFeatured, p.IsFeatured)
	setBool(&out.IsPremium, p.IsPremium)
	setBool(&out.IsRemote, p.IsRemote)
	if p.Rating != nil {
		out.Rating = *p.Rating
	}
	if p.ReviewCount != nil {
		out.ReviewCount = *p.ReviewCount
	}
	if p.Years != nil {
		out.YearsOfExperience = *p.Years
	}
	if p.Images != nil {
		out.Images = append([]string{}, (*p.Images)...)
	}
	out.UpdatedAt = now
	return business.Normalize(out)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
