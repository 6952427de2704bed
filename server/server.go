package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/libsv/go-bt/v2"
	"github.com/pkg/errors"

	ordtx "github.com/shruggr/bsv-ord-tx"
	"github.com/shruggr/bsv-ord-tx/config"
	"github.com/shruggr/bsv-ord-tx/lib"
)

type TxResponse struct {
	Txid  string `json:"txid"`
	Rawtx string `json:"rawtx"`
}

type ScriptRequest struct {
	Address     string             `json:"address" binding:"required"`
	Inscription *ordtx.Inscription `json:"inscription" binding:"required"`
	Metadata    *ordtx.Metadata    `json:"metadata"`
}

type TemplateRequest struct {
	Destination string             `json:"destination" binding:"required"`
	Inscription *ordtx.Inscription `json:"inscription" binding:"required"`
	Outputs     []ordtx.Output     `json:"outputs"`
	Metadata    *ordtx.Metadata    `json:"metadata"`
}

type InscribeRequest struct {
	Utxo          *ordtx.Utxo        `json:"utxo" binding:"required"`
	Destination   string             `json:"destination" binding:"required"`
	PaymentWIF    string             `json:"paymentWif" binding:"required"`
	ChangeAddress string             `json:"changeAddress" binding:"required"`
	FeeRate       float64            `json:"feeRate"`
	Inscription   *ordtx.Inscription `json:"inscription" binding:"required"`
	Metadata      *ordtx.Metadata    `json:"metadata"`
}

type SendRequest struct {
	PaymentUtxo   *ordtx.Utxo        `json:"paymentUtxo" binding:"required"`
	OrdinalUtxo   *ordtx.Utxo        `json:"ordinalUtxo" binding:"required"`
	PaymentWIF    string             `json:"paymentWif" binding:"required"`
	OrdinalWIF    string             `json:"ordinalWif" binding:"required"`
	ChangeAddress string             `json:"changeAddress" binding:"required"`
	FeeRate       float64            `json:"feeRate"`
	Destination   string             `json:"destination" binding:"required"`
	Reinscription *ordtx.Inscription `json:"reinscription"`
	Metadata      *ordtx.Metadata    `json:"metadata"`
}

type DecodeRequest struct {
	Rawtx string `json:"rawtx" binding:"required"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		lib.Log.Fatal(err)
	}
	loader, err := ordtx.NewLoader(cfg.JungleBus, cfg.TxCacheSize)
	if err != nil {
		lib.Log.Fatal(err)
	}

	r := NewRouter(ordtx.NewBuilder(nil), loader, cfg.FeeRate)
	lib.Log.Infof("listening on %s", cfg.Listen)
	if err := r.Run(cfg.Listen); err != nil {
		lib.Log.Fatal(err)
	}
}

func NewRouter(builder *ordtx.Builder, loader *ordtx.Loader, feeRate float64) *gin.Engine {
	r := gin.Default()
	log := lib.GetLoggerEntry("server")

	fee := func(rate float64) float64 {
		if rate > 0 {
			return rate
		}
		return feeRate
	}

	r.GET("/api/utxo/:txid/:vout", func(c *gin.Context) {
		vout, err := strconv.ParseUint(c.Param("vout"), 10, 32)
		if err != nil {
			c.String(http.StatusBadRequest, fmt.Sprintf("error: %s", err))
			return
		}
		utxo, err := loader.LoadUtxo(c.Request.Context(), c.Param("txid"), uint32(vout))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, utxo)
	})

	r.POST("/api/script", func(c *gin.Context) {
		var req ScriptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, fmt.Sprintf("error: %s", err))
			return
		}
		lock, err := builder.Addresses.LockingScript(req.Address)
		if err != nil {
			badRequest(c, err)
			return
		}
		asm, err := ordtx.InscriptionASM(lock, req.Inscription.Body, req.Inscription.Type, req.Metadata)
		if err != nil {
			badRequest(c, err)
			return
		}
		script, err := ordtx.BuildInscription(lock, req.Inscription.Body, req.Inscription.Type, req.Metadata)
		if err != nil {
			badRequest(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"script": script.String(), "asm": asm})
	})

	r.POST("/api/template", func(c *gin.Context) {
		var req TemplateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, fmt.Sprintf("error: %s", err))
			return
		}
		tx, err := builder.CreateOrdinalTemplate(&ordtx.TemplateParams{
			Destination: req.Destination,
			Inscription: req.Inscription,
			Outputs:     req.Outputs,
			Metadata:    req.Metadata,
		})
		if err != nil {
			badRequest(c, err)
			return
		}
		respondTx(c, tx)
	})

	r.POST("/api/inscribe", func(c *gin.Context) {
		var req InscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, fmt.Sprintf("error: %s", err))
			return
		}
		signer, err := ordtx.SignerFromWIF(req.PaymentWIF)
		if err != nil {
			badRequest(c, err)
			return
		}
		tx, err := builder.CreateOrdinal(&ordtx.CreateOrdinalParams{
			Utxo:          req.Utxo,
			Destination:   req.Destination,
			PaymentKey:    signer,
			ChangeAddress: req.ChangeAddress,
			FeeRate:       fee(req.FeeRate),
			Inscription:   req.Inscription,
			Metadata:      req.Metadata,
		})
		if err != nil {
			badRequest(c, err)
			return
		}
		log.Infof("inscribed %s", tx.TxID())
		respondTx(c, tx)
	})

	r.POST("/api/send", func(c *gin.Context) {
		var req SendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, fmt.Sprintf("error: %s", err))
			return
		}
		paySigner, err := ordtx.SignerFromWIF(req.PaymentWIF)
		if err != nil {
			badRequest(c, err)
			return
		}
		ordSigner, err := ordtx.SignerFromWIF(req.OrdinalWIF)
		if err != nil {
			badRequest(c, err)
			return
		}
		tx, err := builder.SendOrdinal(&ordtx.SendOrdinalParams{
			PaymentUtxo:   req.PaymentUtxo,
			OrdinalUtxo:   req.OrdinalUtxo,
			PaymentKey:    paySigner,
			ChangeAddress: req.ChangeAddress,
			FeeRate:       fee(req.FeeRate),
			OrdinalKey:    ordSigner,
			Destination:   req.Destination,
			Reinscription: req.Reinscription,
			Metadata:      req.Metadata,
		})
		if err != nil {
			badRequest(c, err)
			return
		}
		log.Infof("sent %s", tx.TxID())
		respondTx(c, tx)
	})

	r.POST("/api/decode", func(c *gin.Context) {
		var req DecodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, fmt.Sprintf("error: %s", err))
			return
		}
		tx, err := bt.NewTxFromString(req.Rawtx)
		if err != nil {
			c.String(http.StatusBadRequest, fmt.Sprintf("error: %s", err))
			return
		}
		outs := ordtx.ParseTx(tx)
		if outs == nil {
			outs = []*ordtx.InscriptionOutput{}
		}
		c.JSON(http.StatusOK, outs)
	})

	return r
}

func respondTx(c *gin.Context, tx *bt.Tx) {
	c.JSON(http.StatusOK, TxResponse{
		Txid:  tx.TxID(),
		Rawtx: tx.String(),
	})
}

// respondError reports loader failures. Anything that is not an HttpError
// is an upstream failure.
func respondError(c *gin.Context, err error) {
	var httpErr *ordtx.HttpError
	if errors.As(err, &httpErr) {
		c.String(httpErr.StatusCode, fmt.Sprintf("error: %s", httpErr.Err))
		return
	}
	c.String(http.StatusInternalServerError, fmt.Sprintf("error: %s", err))
}

// badRequest reports builder, key and script errors, which all stem from
// the request body.
func badRequest(c *gin.Context, err error) {
	c.String(http.StatusBadRequest, fmt.Sprintf("error: %s", err))
}
