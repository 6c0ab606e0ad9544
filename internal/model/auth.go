package model

type AccessToken struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type WalletLoginRequest struct {
	Address string `json:"address"`
}

type WalletLoginResponse struct {
	Address string `json:"address"`
	Nonce   string `json:"nonce"`
}

type WalletVerifyRequest struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

type WalletVerifyResponse struct {
	AccessToken string `json:"access_token"`
}
