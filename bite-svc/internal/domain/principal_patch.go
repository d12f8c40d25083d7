package domain

// PrincipalPatch is a field-wise profile update. Nil fields are left alone.
type PrincipalPatch struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Image       *string `json:"image,omitempty"`
	IsCreator   *bool   `json:"is_creator,omitempty"`
	StreetName  *string `json:"street_name,omitempty"`
	HouseNumber *string `json:"house_number,omitempty"`
	ZipCode     *string `json:"zip_code,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Country     *string `json:"country,omitempty"`
}

func (p PrincipalPatch) Apply(to Principal) Principal {
	setString(&to.Name, p.Name)
	setString(&to.Email, p.Email)
	setString(&to.Image, p.Image)
	setString(&to.StreetName, p.StreetName)
	setString(&to.HouseNumber, p.HouseNumber)
	setString(&to.ZipCode, p.ZipCode)
	setString(&to.City, p.City)
	setString(&to.State, p.State)
	setString(&to.Country, p.Country)
	if p.IsCreator != nil {
		to.IsCreator = *p.IsCreator
	}
	return to
}

// Values returns the column map of the fields set in the patch.
func (p PrincipalPatch) Values() map[string]any {
	values := map[string]any{}
	addString(values, "name", p.Name)
	addString(values, "email", p.Email)
	addString(values, "image", p.Image)
	addString(values, "street_name", p.StreetName)
	addString(values, "house_number", p.HouseNumber)
	addString(values, "zip_code", p.ZipCode)
	addString(values, "city", p.City)
	addString(values, "state", p.State)
	addString(values, "country", p.Country)
	if p.IsCreator != nil {
		values["is_creator"] = *p.IsCreator
	}
	return values
}

func (p PrincipalPatch) IsEmpty() bool {
	return len(p.Values()) == 0
}

// AddressPatch sets every address field, blank ones included.
func AddressPatch(a Address) PrincipalPatch {
	return PrincipalPatch{
		StreetName:  &a.StreetName,
		HouseNumber: &a.HouseNumber,
		ZipCode:     &a.ZipCode,
		City:        &a.City,
		State:       &a.State,
		Country:     &a.Country,
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func addString(values map[string]any, column string, src *string) {
	if src != nil {
		values[column] = *src
	}
}
