package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/andreyxaxa/Image-Gallery/internal/controller/restapi/v1/validate"
	"github.com/andreyxaxa/Image-Gallery/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func (r *V1) uploadPage(ctx *fiber.Ctx) error {
	return ctx.Render("index", fiber.Map{})
}

// @Summary  	Upload image
// @Description Stores the blob in the asset store, then metadata + outbox event in one transaction
// @Tags 		images
// @Accept 		mpfd
// @Param 		image formData file true "Image file (jpg, png, webp)"
// @Success 	302
// @Failure 	413 {object} response.Error "File too large"
// @Failure 	415 {object} response.Error "Unsupported format"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/upload [post]
func (r *V1) uploadImage(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("image")
	if err != nil || file.Size == 0 {
		// no file picked is not a server fault
		return ctx.Redirect("/", http.StatusFound)
	}

	if file.Size > validate.MaxFileSize {
		return errorResponse(ctx, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file size cant be more than %d bytes", validate.MaxFileSize))
	}

	contentType := file.Header.Get("Content-Type")
	if !validate.AllowedContentTypes[contentType] {
		return errorResponse(ctx, http.StatusUnsupportedMediaType, "unsupported file type. Allowed: jpeg, png, webp")
	}

	fileReader, err := file.Open()
	if err != nil {
		r.logger.Error(err, "restapi - v1 - uploadImage")

		return errorResponse(ctx, http.StatusInternalServerError, "problems with opening the file")
	}
	defer fileReader.Close()

	data, err := io.ReadAll(fileReader)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - uploadImage")

		return errorResponse(ctx, http.StatusInternalServerError, "problems with reading the file")
	}

	_, err = r.gallery.Upload(ctx.UserContext(), data, file.Filename, contentType, file.Size)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - uploadImage")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Redirect("/gallery", http.StatusFound)
}

// @Summary  	Gallery
// @Description Lists every image, newest first
// @Tags 		images
// @Produce 	html
// @Success 	200
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/gallery [get]
func (r *V1) showGallery(ctx *fiber.Ctx) error {
	images, err := r.gallery.List(ctx.UserContext())
	if err != nil {
		r.logger.Error(err, "restapi - v1 - showGallery")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Render("gallery", fiber.Map{"Images": images})
}

// @Summary  	Rename image
// @Description Metadata-only mutation, the stored blob is untouched
// @Tags 		images
// @Accept 		x-www-form-urlencoded
// @Param 		id 		formData string true "Image ID (uuid)"
// @Param 		newName formData string true "New display name"
// @Success 	302
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/rename [post]
func (r *V1) renameImage(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.FormValue("id"))
	if err != nil {
		return ctx.Redirect("/gallery", http.StatusFound)
	}

	err = r.gallery.Rename(ctx.UserContext(), id, ctx.FormValue("newName"))
	if err != nil {
		// an empty name or a record deleted meanwhile is a benign no-op
		if errors.Is(err, errs.ErrEmptyName) || errors.Is(err, errs.ErrRecordNotFound) {
			return ctx.Redirect("/gallery", http.StatusFound)
		}
		r.logger.Error(err, "restapi - v1 - renameImage")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Redirect("/gallery", http.StatusFound)
}

// @Summary  	Delete image
// @Description Destroys the blob, then the metadata record. Repeating the call is harmless
// @Tags 		images
// @Accept 		x-www-form-urlencoded
// @Param 		store_key formData string true "Store key"
// @Success 	302
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/delete [post]
func (r *V1) deleteImage(ctx *fiber.Ctx) error {
	storeKey := ctx.FormValue("store_key")
	if storeKey == "" {
		return ctx.Redirect("/gallery", http.StatusFound)
	}

	err := r.gallery.Delete(ctx.UserContext(), storeKey)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - deleteImage")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Redirect("/gallery", http.StatusFound)
}

// @Summary  	Download image
// @Description Streams the original bytes with an attachment disposition
// @Tags 		images
// @Param 		id path string true "Image ID (uuid)"
// @Success 	200 {file} binary
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/download/{id} [get]
func (r *V1) downloadImage(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Redirect("/gallery", http.StatusFound)
	}

	image, body, err := r.gallery.Download(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return ctx.Redirect("/gallery", http.StatusFound)
		}
		r.logger.Error(err, "restapi - v1 - downloadImage")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	ctx.Set(fiber.HeaderContentType, image.ContentType)
	ctx.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s%s"`, image.OriginalName, image.Ext()))

	return ctx.SendStream(body)
}

func (r *V1) showThumb(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.SendStatus(http.StatusNotFound)
	}

	image, body, err := r.gallery.DownloadThumb(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return ctx.SendStatus(http.StatusNotFound)
		}
		r.logger.Error(err, "restapi - v1 - showThumb")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	ctx.Set(fiber.HeaderContentType, image.ContentType)

	return ctx.SendStream(body)
}
