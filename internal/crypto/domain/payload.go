package domain

// EncryptedPayload is the opaque result of encrypting a secret: the AES-GCM
// ciphertext (authentication tag included) and the initialization vector,
// both base64-encoded. Decrypting requires both halves; neither is meaningful
// outside the encryption service boundary.
type EncryptedPayload struct {
	Ciphertext string
	IV         string
}
