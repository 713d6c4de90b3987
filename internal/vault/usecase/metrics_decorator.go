package usecase

import (
	"context"
	"time"

	"github.com/aikey/vault/internal/metrics"
	"github.com/aikey/vault/internal/vault/domain"
)

// keyUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type keyUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewKeyUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewKeyUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &keyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the counter and duration for one vault operation.
func (k *keyUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	k.metrics.RecordOperation(ctx, "vault", operation, status)
	k.metrics.RecordDuration(ctx, "vault", operation, time.Since(start), status)
}

func (k *keyUseCaseWithMetrics) AddKey(ctx context.Context, input AddKeyInput) (*domain.EncryptedKey, error) {
	start := time.Now()
	key, err := k.next.AddKey(ctx, input)
	k.record(ctx, "key_add", start, err)
	return key, err
}

func (k *keyUseCaseWithMetrics) UpdateKey(
	ctx context.Context,
	keyID string,
	input UpdateKeyInput,
) (*domain.EncryptedKey, error) {
	start := time.Now()
	key, err := k.next.UpdateKey(ctx, keyID, input)
	k.record(ctx, "key_update", start, err)
	return key, err
}

func (k *keyUseCaseWithMetrics) DeleteKey(ctx context.Context, keyID string) error {
	start := time.Now()
	err := k.next.DeleteKey(ctx, keyID)
	k.record(ctx, "key_delete", start, err)
	return err
}

func (k *keyUseCaseWithMetrics) GetKey(ctx context.Context, keyID string) (*domain.EncryptedKey, error) {
	start := time.Now()
	key, err := k.next.GetKey(ctx, keyID)
	k.record(ctx, "key_get", start, err)
	return key, err
}

func (k *keyUseCaseWithMetrics) ListKeys(ctx context.Context, profileID string) ([]*domain.EncryptedKey, error) {
	start := time.Now()
	keys, err := k.next.ListKeys(ctx, profileID)
	k.record(ctx, "key_list", start, err)
	return keys, err
}

func (k *keyUseCaseWithMetrics) DecryptKey(ctx context.Context, keyID string) (string, error) {
	start := time.Now()
	plaintext, err := k.next.DecryptKey(ctx, keyID)
	k.record(ctx, "key_decrypt", start, err)
	return plaintext, err
}

func (k *keyUseCaseWithMetrics) SwitchProfile(ctx context.Context, profileID string) error {
	start := time.Now()
	err := k.next.SwitchProfile(ctx, profileID)
	k.record(ctx, "profile_switch", start, err)
	return err
}

func (k *keyUseCaseWithMetrics) CurrentProfile(ctx context.Context) (string, error) {
	return k.next.CurrentProfile(ctx)
}

func (k *keyUseCaseWithMetrics) RecordBinding(
	ctx context.Context,
	webDomain, profileID, keyID string,
	service domain.ServiceType,
) (*domain.SiteBinding, error) {
	start := time.Now()
	binding, err := k.next.RecordBinding(ctx, webDomain, profileID, keyID, service)
	k.record(ctx, "binding_record", start, err)
	return binding, err
}

func (k *keyUseCaseWithMetrics) SiteRecommendations(
	ctx context.Context,
	webDomain, profileID string,
) ([]*domain.SiteBinding, error) {
	start := time.Now()
	bindings, err := k.next.SiteRecommendations(ctx, webDomain, profileID)
	k.record(ctx, "recommendations", start, err)
	return bindings, err
}

func (k *keyUseCaseWithMetrics) LogUsage(ctx context.Context, keyID, webDomain string, action domain.UsageAction) error {
	start := time.Now()
	err := k.next.LogUsage(ctx, keyID, webDomain, action)
	k.record(ctx, "usage_log", start, err)
	return err
}

func (k *keyUseCaseWithMetrics) PurgeLogs(ctx context.Context, olderThan time.Duration) (int64, error) {
	start := time.Now()
	deleted, err := k.next.PurgeLogs(ctx, olderThan)
	k.record(ctx, "logs_purge", start, err)
	return deleted, err
}
