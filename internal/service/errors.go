package service

import "errors"

// Sentinel errors returned by the service layer on top of the storage
// sentinels in the store package. Match with [errors.Is].
var (
	// ErrTemplateNotFound is returned when an operation references a
	// form type with no template in the catalog.
	ErrTemplateNotFound = errors.New("no template for form type")

	// ErrIncidentNotFound is returned when a form operation references
	// an incident name that does not exist. The incident link is a soft
	// reference; this is where its integrity is enforced.
	ErrIncidentNotFound = errors.New("incident does not exist")

	// ErrFormImmutable is returned when a mutation targets the data
	// payload of a final or archived form without the force flag.
	// Status-only moves (final to archived) remain possible.
	ErrFormImmutable = errors.New("form data is read-only in its current status")

	// ErrNameRequired is returned when a create operation is missing
	// the entity's mandatory name.
	ErrNameRequired = errors.New("name must not be empty")

	// ErrAttachmentsDisabled is returned by attachment operations when
	// no attachments directory is configured.
	ErrAttachmentsDisabled = errors.New("attachments directory is not configured")
)
