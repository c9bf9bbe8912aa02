package domain

import "errors"

// ServiceType identifies which biller category a spend belongs to.
type ServiceType string

const (
	ServiceAirtime     ServiceType = "airtime"
	ServiceData        ServiceType = "data"
	ServiceCable       ServiceType = "cable"
	ServiceElectricity ServiceType = "electricity"
	ServiceBetting     ServiceType = "betting"
	ServiceEducation   ServiceType = "education"
	ServiceTransfer    ServiceType = "transfer"
)

// User is the authenticated wallet holder. Identity is owned by the external
// identity service; this service only reads it.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AirtimeRequest tops up a phone number directly.
type AirtimeRequest struct {
	ServiceID   string  `json:"serviceID"`
	PhoneNumber string  `json:"phoneNumber"`
	Amount      float64 `json:"amount"`
}

func (r *AirtimeRequest) Validate() error {
	if r.ServiceID == "" || r.PhoneNumber == "" || r.Amount <= 0 {
		return errors.New("Missing required fields: serviceID, phoneNumber, and amount are required.")
	}
	return nil
}

func (r *AirtimeRequest) RequiredAmount() float64 { return r.Amount }

// DataRequest buys a data bundle identified by a variation code.
type DataRequest struct {
	ServiceID     string  `json:"serviceID"`
	PhoneNumber   string  `json:"phoneNumber"`
	VariationCode string  `json:"variationCode"`
	Amount        float64 `json:"amount"`
}

func (r *DataRequest) Validate() error {
	if r.ServiceID == "" || r.PhoneNumber == "" || r.VariationCode == "" || r.Amount <= 0 {
		return errors.New("Missing required fields: serviceID, phoneNumber, variationCode, and amount are required.")
	}
	return nil
}

func (r *DataRequest) RequiredAmount() float64 { return r.Amount }

// CableRequest renews a TV subscription against a smartcard number.
type CableRequest struct {
	ServiceID     string  `json:"serviceID"`
	BillersCode   string  `json:"billersCode"`
	VariationCode string  `json:"variation_code"`
	Amount        float64 `json:"amount"`
}

func (r *CableRequest) Validate() error {
	if r.ServiceID == "" || r.BillersCode == "" || r.VariationCode == "" || r.Amount <= 0 {
		return errors.New("Missing required fields.")
	}
	return nil
}

func (r *CableRequest) RequiredAmount() float64 { return r.Amount }

// ElectricityRequest pays a prepaid or postpaid meter. The variation code is
// "prepaid" or "postpaid"; prepaid purchases yield a token from the provider.
type ElectricityRequest struct {
	ServiceID     string  `json:"serviceID"`
	BillersCode   string  `json:"billersCode"`
	VariationCode string  `json:"variation_code"`
	Amount        float64 `json:"amount"`
}

func (r *ElectricityRequest) Validate() error {
	if r.ServiceID == "" || r.BillersCode == "" || r.VariationCode == "" || r.Amount <= 0 {
		return errors.New("Missing required fields.")
	}
	return nil
}

func (r *ElectricityRequest) RequiredAmount() float64 { return r.Amount }

// BettingRequest funds a betting account. The variation code is fixed at the
// gateway, so the caller only supplies the customer id.
type BettingRequest struct {
	ServiceID   string  `json:"serviceID"`
	BillersCode string  `json:"billersCode"`
	Amount      float64 `json:"amount"`
}

func (r *BettingRequest) Validate() error {
	if r.ServiceID == "" || r.BillersCode == "" || r.Amount <= 0 {
		return errors.New("Missing required fields.")
	}
	return nil
}

func (r *BettingRequest) RequiredAmount() float64 { return r.Amount }

// EducationRequest buys result-checker e-pins. Required amount is the unit
// amount times the pin quantity.
type EducationRequest struct {
	VariationCode string  `json:"variation_code"`
	Amount        float64 `json:"amount"`
	Quantity      int     `json:"quantity"`
}

func (r *EducationRequest) Validate() error {
	if r.VariationCode == "" || r.Amount <= 0 || r.Quantity <= 0 {
		return errors.New("Missing required fields: variation_code, amount, and quantity are required.")
	}
	return nil
}

func (r *EducationRequest) RequiredAmount() float64 {
	return r.Amount * float64(r.Quantity)
}

// TransferRequest moves wallet balance out to a named bank account.
type TransferRequest struct {
	BankCode      string  `json:"bankCode"`
	AccountNumber string  `json:"accountNumber"`
	AccountName   string  `json:"accountName"`
	Amount        float64 `json:"amount"`
}

func (r *TransferRequest) Validate() error {
	if r.BankCode == "" || r.AccountNumber == "" || r.AccountName == "" || r.Amount <= 0 {
		return errors.New("Missing required fields.")
	}
	return nil
}

func (r *TransferRequest) RequiredAmount() float64 { return r.Amount }
