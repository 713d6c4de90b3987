package app

import (
	"fmt"

	profileRepository "github.com/aikey/vault/internal/profile/repository"
	profileUsecase "github.com/aikey/vault/internal/profile/usecase"
)

// initProfileRepositories creates the profile-side repositories sharing one
// database handle.
func (c *Container) initProfileRepositories() error {
	var initErr error
	c.profileRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			initErr = fmt.Errorf("failed to get database for profile repositories: %w", err)
			c.initErrors["profileRepos"] = initErr
			return
		}

		c.profileRepo = profileRepository.NewProfileRepository(db)
		c.settingsRepo = profileRepository.NewSettingsRepository(db)
		c.preferenceRepo = profileRepository.NewPreferenceRepository(db)
	})
	if storedErr, exists := c.initErrors["profileRepos"]; exists {
		return storedErr
	}
	return nil
}

// ProfileRepository returns the profile repository instance.
func (c *Container) ProfileRepository() (*profileRepository.ProfileRepository, error) {
	if err := c.initProfileRepositories(); err != nil {
		return nil, err
	}
	return c.profileRepo, nil
}

// ProfileUseCase returns the profile lifecycle use case instance.
func (c *Container) ProfileUseCase() (profileUsecase.UseCase, error) {
	c.profileUCInit.Do(func() {
		fail := func(err error) {
			c.initErrors["profileUseCase"] = err
		}

		txManager, err := c.TxManager()
		if err != nil {
			fail(fmt.Errorf("failed to get tx manager for profile use case: %w", err))
			return
		}
		if err := c.initProfileRepositories(); err != nil {
			fail(err)
			return
		}
		keyRepo, err := c.KeyRepository()
		if err != nil {
			fail(fmt.Errorf("failed to get key repository for profile use case: %w", err))
			return
		}
		bindingRepo, err := c.BindingRepository()
		if err != nil {
			fail(fmt.Errorf("failed to get binding repository for profile use case: %w", err))
			return
		}

		c.profileUseCase = profileUsecase.NewProfileUseCase(
			txManager,
			c.profileRepo,
			c.settingsRepo,
			c.preferenceRepo,
			keyRepo,
			bindingRepo,
		)
	})
	if storedErr, exists := c.initErrors["profileUseCase"]; exists {
		return nil, storedErr
	}
	return c.profileUseCase, nil
}
