package httpadapter

import (
	"context"
	"encoding/hex"
	"log/slog"

	"electra/contexts/identity-access/voter-registry/application"
	"electra/contexts/identity-access/voter-registry/domain/entities"
	domainerrors "electra/contexts/identity-access/voter-registry/domain/errors"
	httptransport "electra/contexts/identity-access/voter-registry/transport/http"
)

type Handler struct {
	Registry application.Service
	Logger   *slog.Logger
}

func (h Handler) RegisterVoterHandler(
	ctx context.Context,
	caller string,
	height uint64,
	req httptransport.RegisterVoterRequest,
) (httptransport.RegisterVoterResponse, error) {
	proofHash, err := decodeProofHash(req.ProofHash)
	if err != nil {
		return httptransport.RegisterVoterResponse{}, err
	}
	voterID, err := h.Registry.RegisterVoter(ctx, caller, height, proofHash)
	if err != nil {
		return httptransport.RegisterVoterResponse{}, err
	}
	return httptransport.RegisterVoterResponse{VoterID: voterID}, nil
}

func (h Handler) VerifyVoterHandler(
	ctx context.Context,
	caller string,
	height uint64,
	voterID uint64,
	req httptransport.VerifyVoterRequest,
) (httptransport.VerifyVoterResponse, error) {
	proofHash, err := decodeProofHash(req.ProofHash)
	if err != nil {
		return httptransport.VerifyVoterResponse{}, err
	}
	if err := h.Registry.VerifyVoter(ctx, caller, height, voterID, proofHash); err != nil {
		return httptransport.VerifyVoterResponse{}, err
	}
	return httptransport.VerifyVoterResponse{Verified: true}, nil
}

func (h Handler) UpdateVoterStatusHandler(
	ctx context.Context,
	caller string,
	height uint64,
	voterID uint64,
	req httptransport.UpdateVoterStatusRequest,
) error {
	return h.Registry.UpdateVoterStatus(ctx, caller, height, voterID, req.Active)
}

func (h Handler) SetAdminHandler(ctx context.Context, caller string, height uint64, req httptransport.SetAdminRequest) error {
	return h.Registry.SetAdmin(ctx, caller, height, req.NewAdmin)
}

func (h Handler) SetRegistrationFeeHandler(ctx context.Context, caller string, height uint64, req httptransport.SetRegistrationFeeRequest) error {
	return h.Registry.SetRegistrationFee(ctx, caller, height, req.Fee)
}

func (h Handler) ToggleRegistrationHandler(ctx context.Context, caller string, height uint64, req httptransport.ToggleRegistrationRequest) error {
	return h.Registry.ToggleRegistration(ctx, caller, height, req.Open)
}

func (h Handler) SetMaxVotersHandler(ctx context.Context, caller string, height uint64, req httptransport.SetMaxVotersRequest) error {
	return h.Registry.SetMaxVoters(ctx, caller, height, req.MaxVoters)
}

func (h Handler) GetVoterHandler(ctx context.Context, voterID uint64) (httptransport.VoterResponse, error) {
	voter, err := h.Registry.GetVoter(ctx, voterID)
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return httptransport.VoterResponse{
		VoterID:      voter.ID,
		Principal:    voter.Principal,
		ProofHash:    hex.EncodeToString(voter.ProofHash[:]),
		RegisteredAt: voter.RegisteredAt,
		Active:       voter.Active,
	}, nil
}

func (h Handler) GetVoterIDByPrincipalHandler(ctx context.Context, principal string) (httptransport.VoterIDResponse, error) {
	voterID, err := h.Registry.GetVoterIDByPrincipal(ctx, principal)
	if err != nil {
		return httptransport.VoterIDResponse{}, err
	}
	return httptransport.VoterIDResponse{VoterID: voterID, Principal: principal}, nil
}

func (h Handler) RegistrationStatusHandler(ctx context.Context) (httptransport.RegistrationStatusResponse, error) {
	open, err := h.Registry.RegistrationStatus(ctx)
	if err != nil {
		return httptransport.RegistrationStatusResponse{}, err
	}
	next, err := h.Registry.VoterCount(ctx)
	if err != nil {
		return httptransport.RegistrationStatusResponse{}, err
	}
	return httptransport.RegistrationStatusResponse{Open: open, NextVoter: next}, nil
}

func (h Handler) GetAuditRecordHandler(ctx context.Context, logID uint64) (httptransport.AuditRecordResponse, error) {
	record, err := h.Registry.GetAuditRecord(ctx, logID)
	if err != nil {
		return httptransport.AuditRecordResponse{}, err
	}
	return httptransport.AuditRecordResponse{
		LogID:     record.ID,
		Action:    record.Action,
		Actor:     record.Actor,
		Timestamp: record.Timestamp,
	}, nil
}

func decodeProofHash(raw string) (entities.ProofHash, error) {
	var proofHash entities.ProofHash
	decoded, err := hex.DecodeString(raw)
	if err != nil || len(decoded) != entities.ProofHashSize {
		return proofHash, domainerrors.ErrInvalidProof
	}
	copy(proofHash[:], decoded)
	return proofHash, nil
}
