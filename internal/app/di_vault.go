package app

import (
	"fmt"

	vaultRepository "github.com/aikey/vault/internal/vault/repository"
	vaultUsecase "github.com/aikey/vault/internal/vault/usecase"
)

// initVaultRepositories creates the vault-side repositories sharing one
// database handle.
func (c *Container) initVaultRepositories() error {
	var initErr error
	c.vaultRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			initErr = fmt.Errorf("failed to get database for vault repositories: %w", err)
			c.initErrors["vaultRepos"] = initErr
			return
		}

		c.keyRepo = vaultRepository.NewKeyRepository(db)
		c.bindingRepo = vaultRepository.NewBindingRepository(db)
		c.usageLogRepo = vaultRepository.NewUsageLogRepository(db)
		c.metadataRepo = vaultRepository.NewMetadataRepository(db)
	})
	if storedErr, exists := c.initErrors["vaultRepos"]; exists {
		return storedErr
	}
	return nil
}

// KeyRepository returns the encrypted key repository instance.
func (c *Container) KeyRepository() (*vaultRepository.KeyRepository, error) {
	if err := c.initVaultRepositories(); err != nil {
		return nil, err
	}
	return c.keyRepo, nil
}

// BindingRepository returns the site binding repository instance.
func (c *Container) BindingRepository() (*vaultRepository.BindingRepository, error) {
	if err := c.initVaultRepositories(); err != nil {
		return nil, err
	}
	return c.bindingRepo, nil
}

// UsageLogRepository returns the usage log repository instance.
func (c *Container) UsageLogRepository() (*vaultRepository.UsageLogRepository, error) {
	if err := c.initVaultRepositories(); err != nil {
		return nil, err
	}
	return c.usageLogRepo, nil
}

// MetadataRepository returns the metadata repository instance.
func (c *Container) MetadataRepository() (*vaultRepository.MetadataRepository, error) {
	if err := c.initVaultRepositories(); err != nil {
		return nil, err
	}
	return c.metadataRepo, nil
}

// KeyUseCase returns the vault orchestration use case, wrapped with metrics
// instrumentation.
func (c *Container) KeyUseCase() (vaultUsecase.UseCase, error) {
	c.keyUCInit.Do(func() {
		fail := func(err error) {
			c.initErrors["keyUseCase"] = err
		}

		txManager, err := c.TxManager()
		if err != nil {
			fail(fmt.Errorf("failed to get tx manager for key use case: %w", err))
			return
		}
		encryptor, err := c.EncryptionService()
		if err != nil {
			fail(fmt.Errorf("failed to get encryption service for key use case: %w", err))
			return
		}
		if err := c.initVaultRepositories(); err != nil {
			fail(err)
			return
		}
		profiles, err := c.ProfileUseCase()
		if err != nil {
			fail(fmt.Errorf("failed to get profile use case for key use case: %w", err))
			return
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			fail(fmt.Errorf("failed to get business metrics for key use case: %w", err))
			return
		}

		useCase := vaultUsecase.NewKeyUseCase(
			txManager,
			encryptor,
			c.keyRepo,
			c.bindingRepo,
			c.usageLogRepo,
			c.metadataRepo,
			profiles,
		)
		c.keyUseCase = vaultUsecase.NewKeyUseCaseWithMetrics(useCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["keyUseCase"]; exists {
		return nil, storedErr
	}
	return c.keyUseCase, nil
}
