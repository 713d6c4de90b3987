package app

import (
	"fmt"

	cryptoService "github.com/aikey/vault/internal/crypto/service"
	vaultRepository "github.com/aikey/vault/internal/vault/repository"
)

// EncryptionService returns the device-bound encryption service. Its salt is
// persisted through the metadata collection, so the same derived key comes
// back across restarts on the same installation.
func (c *Container) EncryptionService() (*cryptoService.EncryptionService, error) {
	c.encryptionInit.Do(func() {
		metadataRepo, err := c.MetadataRepository()
		if err != nil {
			c.initErrors["encryptionService"] = fmt.Errorf(
				"failed to get metadata repository for encryption service: %w", err)
			return
		}

		identity := cryptoService.DeviceIdentity{
			InstallationID: c.config.InstallationID,
			ClientInfo:     c.config.ClientInfo,
			Locale:         c.config.Locale,
		}
		c.encryptionService = cryptoService.NewEncryptionService(
			identity,
			vaultRepository.NewMetadataSaltStore(metadataRepo),
		)
	})
	if storedErr, exists := c.initErrors["encryptionService"]; exists {
		return nil, storedErr
	}
	return c.encryptionService, nil
}
