package core

import (
	"errors"
	"fmt"
)

// ValidateDocument checks the invariants a RegulatoryDocument must satisfy
// before it may be persisted.
func ValidateDocument(doc *RegulatoryDocument) error {
	if doc == nil {
		return ErrInvalidDocument
	}

	var errs []error

	if doc.URL == "" {
		errs = append(errs, ErrEmptyURL)
	}
	if doc.Title == "" {
		errs = append(errs, ErrEmptyTitle)
	}
	if doc.Content == "" {
		errs = append(errs, ErrEmptyContent)
	}
	if doc.ContentHash == "" {
		errs = append(errs, ErrEmptyContentHash)
	}
	if doc.Version < 1 {
		errs = append(errs, ErrInvalidVersion)
	}
	if doc.Status < StatusPending || doc.Status > StatusFailed {
		errs = append(errs, ErrInvalidStatus)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(errs...))
	}
	return nil
}

// ValidateFeedItem checks that a parsed feed item carries the required fields.
// Items failing validation are skipped, never fatal to the feed.
func ValidateFeedItem(item *FeedItem) error {
	if item == nil {
		return ErrInvalidFeedItem
	}

	var errs []error

	if item.URL == "" {
		errs = append(errs, ErrEmptyURL)
	}
	if item.Title == "" {
		errs = append(errs, ErrEmptyTitle)
	}
	if item.Source == "" {
		errs = append(errs, ErrInvalidSourceID)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidFeedItem, errors.Join(errs...))
	}
	return nil
}

// ValidateSource checks a feed source definition at registration time.
// An unknown parser kind is not an error here; the feed registry falls back
// to the generic RSS parser for kinds it does not recognize.
func ValidateSource(src *FeedSource) error {
	if src == nil {
		return ErrInvalidSourceID
	}
	if src.ID == "" {
		return ErrInvalidSourceID
	}
	if src.URL == "" {
		return fmt.Errorf("source %s: %w", src.ID, ErrEmptyURL)
	}
	return nil
}
