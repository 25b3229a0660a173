package sqlinline

const QUpsertUserByExternalID = `--sql fef9f226-e2da-4d42-9ea6-da3fb85e9ff2
insert into users (id, external_id, email, name, picture, prompt_history, created_at, updated_at)
values (gen_random_uuid(), $1::text, $2::text, nullif($3::text, ''), nullif($4::text, ''), '[]'::jsonb, now(), now())
on conflict (external_id) do update set
    email = excluded.email,
    name = coalesce(excluded.name, users.name),
    picture = coalesce(excluded.picture, users.picture),
    updated_at = now()
returning
    id::text,
    external_id,
    email,
    coalesce(name, '') as name,
    coalesce(picture, '') as picture,
    prompt_history,
    created_at,
    updated_at;
`

const QSelectUserByID = `--sql 715ca1c1-13ff-48bf-bc17-4f7804fd108b
select
    id::text,
    external_id,
    email,
    coalesce(name, '') as name,
    coalesce(picture, '') as picture,
    prompt_history,
    created_at,
    updated_at
from users
where id = $1::uuid
limit 1;
`

const QSelectPromptHistory = `--sql fba6b297-1fb8-456c-99a2-cedec0e42c7c
select prompt_history
from users
where id = $1::uuid
limit 1;
`

const QUpdatePromptHistory = `--sql 041e23b8-29de-44dd-a457-c02bc68e4adc
update users
set prompt_history = $2::jsonb,
    updated_at = now()
where id = $1::uuid
returning prompt_history;
`

const QSelectUserIDByEmail = `--sql 3c1b7e52-9a4d-4f0e-b6a8-2d5e7f91c0a4
select id::text
from users
where lower(email) = lower($1::text)
order by created_at asc
limit 1;
`
