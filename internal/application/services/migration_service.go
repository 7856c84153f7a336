package services

import (
	"fmt"
	"time"

	"github.com/PageCraftHQ/pagecraft-go/internal/domain/apperrors"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/blocks"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/entities/content"
	"github.com/PageCraftHQ/pagecraft-go/internal/domain/migration"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/messaging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/logging"
	"github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/observability/performance"
	contentrepo "github.com/PageCraftHQ/pagecraft-go/internal/infrastructure/persistence/content"
)

// ConvertibleType describes one deprecated block type and its successor, for
// editor tooling that offers "convert this block".
type ConvertibleType struct {
	BlockType blocks.BlockType        `json:"blockType"`
	Target    blocks.ConversionTarget `json:"target"`
}

// MigrationService applies the pure conversion functions to stored sections.
type MigrationService struct {
	guard       *OwnershipGuard
	sectionRepo *contentrepo.SectionRepository
	broadcaster *messaging.EditorBroadcaster
	perf        *performance.Tracker
	logger      *logging.ChanneledLogger
}

func NewMigrationService(guard *OwnershipGuard, sectionRepo *contentrepo.SectionRepository, broadcaster *messaging.EditorBroadcaster, perf *performance.Tracker, logger *logging.ChanneledLogger) *MigrationService {
	return &MigrationService{
		guard:       guard,
		sectionRepo: sectionRepo,
		broadcaster: broadcaster,
		perf:        perf,
		logger:      logger,
	}
}

// ListConvertible returns every deprecated block type with its successor.
func (s *MigrationService) ListConvertible() []ConvertibleType {
	var result []ConvertibleType
	for _, blockType := range blocks.AllTypes() {
		if target, ok := blocks.ConversionTargetFor(blockType); ok {
			result = append(result, ConvertibleType{BlockType: blockType, Target: target})
		}
	}
	return result
}

// SectionConvertibility reports whether a stored section can be upgraded and
// to what.
func (s *MigrationService) SectionConvertibility(sectionID, userID string) (*ConvertibleType, bool, error) {
	section, err := s.guard.Section(sectionID, userID)
	if err != nil {
		return nil, false, err
	}

	blockType := blocks.BlockType(section.BlockType)
	target, ok := blocks.ConversionTargetFor(blockType)
	if !ok {
		return nil, false, nil
	}
	return &ConvertibleType{BlockType: blockType, Target: target}, true, nil
}

// ConvertSection upgrades one stored section to its successor type. A section
// whose block type has no successor fails with ErrInvalidArgument.
func (s *MigrationService) ConvertSection(sectionID, userID string) (*content.SectionNode, error) {
	marker := s.perf.StartOperation("migration:convert_section")
	defer s.perf.CompleteOperation(marker)

	section, err := s.guard.Section(sectionID, userID)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	blockType := blocks.BlockType(section.BlockType)
	if !migration.IsConvertible(blockType) {
		err := fmt.Errorf("block type %q has no successor: %w", blockType, apperrors.ErrInvalidArgument)
		marker.SetError(err)
		return nil, err
	}

	targetType, converted, err := migration.Convert(blockType, section.Content)
	if err != nil {
		marker.SetError(err)
		return nil, err
	}

	if err := s.sectionRepo.UpdateBlock(sectionID, string(targetType), converted); err != nil {
		marker.SetError(err)
		return nil, err
	}

	section.BlockType = string(targetType)
	section.Content = converted

	s.logger.Content().Info("Section converted", "sectionId", sectionID, "from", blockType, "to", targetType)
	s.broadcaster.BroadcastPageUpdated(section.PageID, []string{sectionID}, "")
	return section, nil
}

// ConvertPage upgrades every convertible section of a page and returns how
// many were converted. Sections already on a unified type are skipped.
func (s *MigrationService) ConvertPage(pageID, userID string) (int, error) {
	start := time.Now()
	marker := s.perf.StartOperation("migration:convert_page")
	defer s.perf.CompleteOperation(marker)

	if _, err := s.guard.Page(pageID, userID); err != nil {
		marker.SetError(err)
		return 0, err
	}

	sections, err := s.sectionRepo.FindByPageID(pageID)
	if err != nil {
		marker.SetError(err)
		return 0, err
	}

	converted := 0
	var convertedIDs []string
	for _, section := range sections {
		blockType := blocks.BlockType(section.BlockType)
		if !migration.IsConvertible(blockType) {
			continue
		}

		targetType, payload, err := migration.Convert(blockType, section.Content)
		if err != nil {
			marker.SetError(err)
			return converted, fmt.Errorf("failed to convert section %s: %w", section.ID, err)
		}
		if err := s.sectionRepo.UpdateBlock(section.ID, string(targetType), payload); err != nil {
			marker.SetError(err)
			return converted, err
		}
		converted++
		convertedIDs = append(convertedIDs, section.ID)
	}

	s.logger.Content().Info("Page sections converted", "pageId", pageID, "converted", converted, "duration", time.Since(start))
	if converted > 0 {
		s.broadcaster.BroadcastPageUpdated(pageID, convertedIDs, "")
	}
	return converted, nil
}
