package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *Api) HandleCheckMountPoint() echo.HandlerFunc {
	type output struct {
		Ok         bool   `json:"ok"`
		MountPoint string `json:"mp"`
		IsTaken    bool   `json:"is_taken"`
	}
	return func(c echo.Context) error {
		taken, mp, err := a.isMountPointTaken(c.Request().Context(), c.QueryParam("mp"))
		if err != nil {
			return jsonMessageError(c, err)
		}

		return c.JSON(http.StatusOK, output{
			Ok:         true,
			MountPoint: mp,
			IsTaken:    taken,
		})
	}
}

// isMountPointTaken is the uniqueness gate shared by the check endpoint
// and the submission pipeline: normalize, consult the cache, then query
// the registry at most once per TTL window. Lookup errors are never
// cached.
func (a *Api) isMountPointTaken(ctx context.Context, raw string) (taken bool, mountPoint string, err error) {
	mountPoint, err = normalizeMountPoint(raw)
	if err != nil {
		return false, "", err
	}

	if taken, ok := a.mpCache.get(mountPoint); ok {
		return taken, mountPoint, nil
	}

	taken, err = a.uniqueness.MountPointExists(ctx, mountPoint)
	if err != nil {
		return false, mountPoint, err
	}

	a.mpCache.put(mountPoint, taken)
	return taken, mountPoint, nil
}
