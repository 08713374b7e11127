package model

import "errors"

var (
	// ErrNotFound is returned by repositories when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrClientHasContracts blocks deleting a client that still owns
	// non-cancelled contracts.
	ErrClientHasContracts = errors.New("client has active contracts")

	// ErrInstallmentPaid blocks paying an installment twice.
	ErrInstallmentPaid = errors.New("installment already paid")

	// ErrContractNotActive blocks payments and schedule edits on draft or
	// cancelled contracts.
	ErrContractNotActive = errors.New("contract is not active")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrLicenseInvalid is returned when the studio license key does not
	// check out.
	ErrLicenseInvalid = errors.New("license key is not valid")

	// ErrEmailTaken is returned when registering a duplicate email.
	ErrEmailTaken = errors.New("email already registered")
)
